package controllers

import (
	"context"
	"fmt"

	"github.com/graphql-go/graphql"

	"github.com/portostore/portostore/app/catalog"
	gql "github.com/portostore/portostore/pkg/graphql"
)

// GraphReader is the read surface the GraphQL schema resolves against.
type GraphReader interface {
	FeaturedProducts(ctx context.Context) ([]catalog.ProductCard, error)
	ProductsByCategory(ctx context.Context, name string) ([]catalog.ProductCard, error)
	CategoryTiles(ctx context.Context) ([]catalog.CategoryTile, error)
}

// NewCatalogSchema builds the read-only catalog query schema. Prices resolve
// as fixed two-decimal strings so clients never touch binary floats.
func NewCatalogSchema(reader GraphReader) (graphql.Schema, error) {
	productType := graphql.NewObject(graphql.ObjectConfig{
		Name: "Product",
		Fields: graphql.Fields{
			"slug": &graphql.Field{Type: graphql.String},
			"name": &graphql.Field{Type: graphql.String},
			"price": &graphql.Field{
				Type: graphql.String,
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					card, ok := p.Source.(catalog.ProductCard)
					if !ok {
						return nil, fmt.Errorf("unexpected source %T", p.Source)
					}
					return card.Price.StringFixed(2), nil
				},
			},
			"image": &graphql.Field{Type: graphql.String},
		},
	})

	categoryType := graphql.NewObject(graphql.ObjectConfig{
		Name: "Category",
		Fields: graphql.Fields{
			"title": &graphql.Field{Type: graphql.String},
			"image": &graphql.Field{Type: graphql.String},
		},
	})

	query := graphql.NewObject(graphql.ObjectConfig{
		Name: "Query",
		Fields: graphql.Fields{
			"featured": &graphql.Field{
				Type: graphql.NewList(productType),
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					return reader.FeaturedProducts(p.Context)
				},
			},
			"products": &graphql.Field{
				Type: graphql.NewList(productType),
				Args: graphql.FieldConfigArgument{
					"category": &graphql.ArgumentConfig{
						Type: graphql.NewNonNull(graphql.String),
					},
				},
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					name, _ := p.Args["category"].(string)
					return reader.ProductsByCategory(p.Context, name)
				},
			},
			"categories": &graphql.Field{
				Type: graphql.NewList(categoryType),
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					return reader.CategoryTiles(p.Context)
				},
			},
		},
	})

	return gql.NewSchema(query)
}
