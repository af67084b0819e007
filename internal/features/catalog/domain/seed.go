package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// SeedProducts returns the initial catalog, dated relative to now.
func SeedProducts(now time.Time) []Product {
	day := 24 * time.Hour
	mk := func(id, title, author, desc, price string, stock int, t ProductType, cats, tags []string, created, updated int) Product {
		return Product{
			ID:          id,
			Title:       title,
			Author:      author,
			Description: desc,
			Price:       decimal.RequireFromString(price),
			Stock:       stock,
			Type:        t,
			Categories:  cats,
			Tags:        tags,
			CreatedAt:   now.Add(-time.Duration(created) * day),
			UpdatedAt:   now.Add(-time.Duration(updated) * day),
		}
	}
	return []Product{
		mk("1", "Código Limpo", "Robert C. Martin", "Um manual de artesanato de software ágil",
			"89.90", 15, ProductPhysical, []string{"Programação", "Boas Práticas"}, []string{"codigo-limpo", "refatoracao", "agil"}, 7, 2),
		mk("2", "Padrões de Projeto", "Gang of Four", "Elementos de software orientado a objetos reutilizável",
			"129.90", 8, ProductEbook, []string{"Programação", "Arquitetura"}, []string{"padroes", "poo", "projeto-de-software"}, 14, 5),
		mk("3", "O Programador Pragmático", "David Thomas, Andrew Hunt", "Sua jornada rumo à maestria",
			"79.90", 20, ProductPhysical, []string{"Programação", "Carreira"}, []string{"pragmatico", "boas-praticas", "carreira"}, 21, 3),
		mk("4", "Introdução aos Algoritmos", "Thomas H. Cormen", "Publicação da MIT Press",
			"199.90", 5, ProductPhysical, []string{"Algoritmos", "Ciência da Computação"}, []string{"algoritmos", "estruturas-de-dados", "mit"}, 30, 10),
		mk("5", "Inteligência Artificial: Uma Abordagem Moderna", "Stuart Russell, Peter Norvig", "O principal livro-texto em IA",
			"249.90", 12, ProductEbook, []string{"IA", "Aprendizado de Máquina"}, []string{"ia", "am", "redes-neurais"}, 45, 1),
	}
}
