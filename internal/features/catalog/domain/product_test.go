package domain

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProductInput_Validate(t *testing.T) {
	valid := ProductInput{Title: "Livro", Price: decimal.RequireFromString("10.00"), Stock: 1, Type: ProductEbook}

	tests := []struct {
		name    string
		mutate  func(*ProductInput)
		wantErr bool
	}{
		{"Valid", func(*ProductInput) {}, false},
		{"MissingTitle", func(in *ProductInput) { in.Title = "  " }, true},
		{"ZeroPrice", func(in *ProductInput) { in.Price = decimal.Zero }, true},
		{"NegativeStock", func(in *ProductInput) { in.Stock = -1 }, true},
		{"UnknownType", func(in *ProductInput) { in.Type = "audiobook" }, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in := valid
			tt.mutate(&in)
			err := in.Validate()
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrInvalidProduct)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestProductUpdate_Apply(t *testing.T) {
	now := time.Date(2026, 4, 1, 0, 0, 0, 0, time.UTC)
	p := SeedProducts(now)[0]
	created := p.CreatedAt

	title := "Código Limpo (2ª edição)"
	require.NoError(t, ProductUpdate{Title: &title}.Apply(&p, now.Add(time.Hour)))
	assert.Equal(t, title, p.Title)
	assert.Equal(t, "1", p.ID)
	assert.Equal(t, created, p.CreatedAt)
	assert.Equal(t, now.Add(time.Hour), p.UpdatedAt)

	neg := -3
	err := ProductUpdate{Stock: &neg}.Apply(&p, now)
	assert.ErrorIs(t, err, ErrInvalidProduct)
	assert.Equal(t, 15, p.Stock)
}

func TestProduct_AdjustStock(t *testing.T) {
	now := time.Now()
	p := Product{ID: "4", Stock: 5}

	require.NoError(t, p.AdjustStock(-5, now))
	assert.Equal(t, 0, p.Stock)

	err := p.AdjustStock(-1, now)
	assert.ErrorIs(t, err, ErrInsufficientStock)
	assert.Equal(t, 0, p.Stock)
}

func TestSeedProducts(t *testing.T) {
	products := SeedProducts(time.Now())
	require.Len(t, products, 5)

	ebooks := 0
	for _, p := range products {
		assert.NoError(t, ProductInput{Title: p.Title, Price: p.Price, Stock: p.Stock, Type: p.Type}.Validate())
		if p.Type == ProductEbook {
			ebooks++
		}
	}
	assert.Equal(t, 2, ebooks)
}
