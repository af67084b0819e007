package domain

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

var (
	// ErrProductNotFound is returned when no product has the requested id.
	ErrProductNotFound = errors.New("product not found")
	// ErrInsufficientStock is returned when a stock change would go below zero.
	ErrInsufficientStock = errors.New("insufficient stock")
	// ErrInvalidProduct is returned when product input fails validation.
	ErrInvalidProduct = errors.New("invalid product")
)

// ProductType distinguishes shipped books from ebooks.
type ProductType string

const (
	ProductPhysical ProductType = "physical"
	ProductEbook    ProductType = "ebook"
)

// Valid reports whether t is a known product type.
func (t ProductType) Valid() bool {
	return t == ProductPhysical || t == ProductEbook
}

// Product is a catalog entry.
type Product struct {
	ID          string          `json:"id"`
	Title       string          `json:"title"`
	Author      string          `json:"author,omitempty"`
	Description string          `json:"description,omitempty"`
	Price       decimal.Decimal `json:"price"`
	Stock       int             `json:"stock"`
	Type        ProductType     `json:"type"`
	Categories  []string        `json:"categories"`
	Tags        []string        `json:"tags"`
	CoverURL    string          `json:"coverUrl,omitempty"`
	CreatedAt   time.Time       `json:"createdAt"`
	UpdatedAt   time.Time       `json:"updatedAt"`
}

// ProductInput is the payload for creating a product.
type ProductInput struct {
	Title       string          `json:"title"`
	Author      string          `json:"author"`
	Description string          `json:"description"`
	Price       decimal.Decimal `json:"price"`
	Stock       int             `json:"stock"`
	Type        ProductType     `json:"type"`
	Categories  []string        `json:"categories"`
	Tags        []string        `json:"tags"`
	CoverURL    string          `json:"coverUrl"`
}

// Validate checks the required fields.
func (in ProductInput) Validate() error {
	switch {
	case strings.TrimSpace(in.Title) == "":
		return fmt.Errorf("%w: title is required", ErrInvalidProduct)
	case !in.Price.IsPositive():
		return fmt.Errorf("%w: price must be positive", ErrInvalidProduct)
	case in.Stock < 0:
		return fmt.Errorf("%w: stock cannot be negative", ErrInvalidProduct)
	case !in.Type.Valid():
		return fmt.Errorf("%w: type must be physical or ebook", ErrInvalidProduct)
	}
	return nil
}

// ProductUpdate is a partial update. Nil fields are left unchanged.
type ProductUpdate struct {
	Title       *string          `json:"title,omitempty"`
	Author      *string          `json:"author,omitempty"`
	Description *string          `json:"description,omitempty"`
	Price       *decimal.Decimal `json:"price,omitempty"`
	Stock       *int             `json:"stock,omitempty"`
	Type        *ProductType     `json:"type,omitempty"`
	Categories  []string         `json:"categories,omitempty"`
	Tags        []string         `json:"tags,omitempty"`
	CoverURL    *string          `json:"coverUrl,omitempty"`
}

// Apply merges u into p. ID and CreatedAt never change.
func (u ProductUpdate) Apply(p *Product, now time.Time) error {
	next := *p
	if u.Title != nil {
		next.Title = *u.Title
	}
	if u.Author != nil {
		next.Author = *u.Author
	}
	if u.Description != nil {
		next.Description = *u.Description
	}
	if u.Price != nil {
		next.Price = *u.Price
	}
	if u.Stock != nil {
		next.Stock = *u.Stock
	}
	if u.Type != nil {
		next.Type = *u.Type
	}
	if u.Categories != nil {
		next.Categories = u.Categories
	}
	if u.Tags != nil {
		next.Tags = u.Tags
	}
	if u.CoverURL != nil {
		next.CoverURL = *u.CoverURL
	}

	in := ProductInput{Title: next.Title, Price: next.Price, Stock: next.Stock, Type: next.Type}
	if err := in.Validate(); err != nil {
		return err
	}
	next.UpdatedAt = now
	*p = next
	return nil
}

// AdjustStock adds delta to the stock. The result may not be negative.
func (p *Product) AdjustStock(delta int, now time.Time) error {
	if p.Stock+delta < 0 {
		return fmt.Errorf("%w: product %s has %d, change %d", ErrInsufficientStock, p.ID, p.Stock, delta)
	}
	p.Stock += delta
	p.UpdatedAt = now
	return nil
}
