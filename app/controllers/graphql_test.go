package controllers

import (
	"context"
	"testing"

	"github.com/graphql-go/graphql"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/portostore/portostore/app/catalog"
)

type mockGraphReader struct {
	cards []catalog.ProductCard
	tiles []catalog.CategoryTile

	gotCategory string
}

func (m *mockGraphReader) FeaturedProducts(context.Context) ([]catalog.ProductCard, error) {
	return m.cards, nil
}

func (m *mockGraphReader) ProductsByCategory(_ context.Context, name string) ([]catalog.ProductCard, error) {
	m.gotCategory = name
	return m.cards, nil
}

func (m *mockGraphReader) CategoryTiles(context.Context) ([]catalog.CategoryTile, error) {
	return m.tiles, nil
}

func TestCatalogSchemaFeaturedQuery(t *testing.T) {
	reader := &mockGraphReader{cards: []catalog.ProductCard{
		{Slug: "ves-001", Name: "Vestido", Price: decimal.RequireFromString("150"), Image: "https://img/1.jpg"},
	}}
	schema, err := NewCatalogSchema(reader)
	require.NoError(t, err)

	result := graphql.Do(graphql.Params{
		Schema:        schema,
		RequestString: `{ featured { slug name price image } }`,
		Context:       context.Background(),
	})
	require.Empty(t, result.Errors)

	data := result.Data.(map[string]interface{})
	featured := data["featured"].([]interface{})
	require.Len(t, featured, 1)

	first := featured[0].(map[string]interface{})
	assert.Equal(t, "ves-001", first["slug"])
	assert.Equal(t, "150.00", first["price"])
}

func TestCatalogSchemaProductsByCategory(t *testing.T) {
	reader := &mockGraphReader{}
	schema, err := NewCatalogSchema(reader)
	require.NoError(t, err)

	result := graphql.Do(graphql.Params{
		Schema:        schema,
		RequestString: `{ products(category: "vestidos") { slug } }`,
		Context:       context.Background(),
	})
	require.Empty(t, result.Errors)
	assert.Equal(t, "vestidos", reader.gotCategory)
}

func TestCatalogSchemaRequiresCategoryArg(t *testing.T) {
	schema, err := NewCatalogSchema(&mockGraphReader{})
	require.NoError(t, err)

	result := graphql.Do(graphql.Params{
		Schema:        schema,
		RequestString: `{ products { slug } }`,
		Context:       context.Background(),
	})
	assert.NotEmpty(t, result.Errors)
}
