package models

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Legacy product documents carry the category field in several shapes; every
// one must decode to the same canonical reference.

func TestCategoryRefDecodesEmbeddedDocument(t *testing.T) {
	catID := primitive.NewObjectID()
	raw, err := bson.Marshal(bson.M{
		"name": "With embedded category",
		"category": bson.M{
			"_id":  catID,
			"name": "Rings",
			"slug": "rings",
		},
	})
	require.NoError(t, err)

	var product Product
	require.NoError(t, bson.Unmarshal(raw, &product))

	assert.Equal(t, catID.Hex(), product.Category.ID)
	assert.Equal(t, "Rings", product.Category.Name)
	require.NotNil(t, product.Category.Slug)
	assert.Equal(t, "rings", *product.Category.Slug)
}

func TestCategoryRefDecodesBareIDString(t *testing.T) {
	catID := primitive.NewObjectID()
	raw, err := bson.Marshal(bson.M{
		"name":     "With string category",
		"category": catID.Hex(),
	})
	require.NoError(t, err)

	var product Product
	require.NoError(t, bson.Unmarshal(raw, &product))

	assert.Equal(t, catID.Hex(), product.Category.ID)
	assert.Equal(t, "Uncategorized", product.Category.Name)
	assert.Nil(t, product.Category.Slug)
}

func TestCategoryRefDecodesObjectID(t *testing.T) {
	catID := primitive.NewObjectID()
	raw, err := bson.Marshal(bson.M{
		"name":     "With ObjectID category",
		"category": catID,
	})
	require.NoError(t, err)

	var product Product
	require.NoError(t, bson.Unmarshal(raw, &product))

	assert.Equal(t, catID.Hex(), product.Category.ID)
	assert.Equal(t, "Uncategorized", product.Category.Name)
}

func TestCategoryRefDecodesNull(t *testing.T) {
	raw, err := bson.Marshal(bson.M{
		"name":     "Without category",
		"category": nil,
	})
	require.NoError(t, err)

	var product Product
	require.NoError(t, bson.Unmarshal(raw, &product))

	assert.Equal(t, Uncategorized(), product.Category)
}

func TestCategoryRefStoresBareIDString(t *testing.T) {
	catID := primitive.NewObjectID()
	product := Product{
		Name:     "Round trip",
		Category: CategoryRef{ID: catID.Hex(), Name: "Rings"},
	}

	raw, err := bson.Marshal(product)
	require.NoError(t, err)

	var doc bson.M
	require.NoError(t, bson.Unmarshal(raw, &doc))
	assert.Equal(t, catID.Hex(), doc["category"])
}

func TestCategoryRefJSONFillsPlaceholderName(t *testing.T) {
	out, err := json.Marshal(CategoryRef{ID: "abc"})
	require.NoError(t, err)
	assert.JSONEq(t, `{"id":"abc","name":"Uncategorized","slug":null}`, string(out))
}
