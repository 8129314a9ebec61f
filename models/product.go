package models

import (
	"encoding/json"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/bsontype"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Product is a storefront item. The category field is polymorphic on disk
// (embedded document, bare id string, ObjectID, or absent); CategoryRef
// resolves it into one canonical shape at the BSON boundary so nothing
// downstream has to branch on representation.
type Product struct {
	ID               primitive.ObjectID `json:"id" bson:"_id,omitempty"`
	Name             string             `json:"name" bson:"name"`
	Price            float64            `json:"price" bson:"price"`
	Category         CategoryRef        `json:"category" bson:"category,omitempty"`
	Description      string             `json:"description" bson:"description,omitempty"`
	ShortDescription string             `json:"shortDescription" bson:"shortDescription,omitempty"`
	SKU              string             `json:"sku" bson:"sku,omitempty"`
	Stock            int                `json:"stock" bson:"stock"`
	Weight           string             `json:"weight" bson:"weight,omitempty"`
	Dimensions       string             `json:"dimensions" bson:"dimensions,omitempty"`
	Featured         bool               `json:"featured" bson:"featured"`
	Images           []string           `json:"images" bson:"images"`
	CreatedAt        time.Time          `json:"created_at" bson:"created_at"`
	UpdatedAt        *time.Time         `json:"updated_at,omitempty" bson:"updated_at,omitempty"`
}

// CategoryRef is the canonical category reference embedded in a product
// response: always an object with id, name and slug.
type CategoryRef struct {
	ID   string  `json:"id"`
	Name string  `json:"name"`
	Slug *string `json:"slug"`
}

const uncategorizedName = "Uncategorized"

// Uncategorized is the placeholder used when a product's category reference
// is absent or cannot be resolved.
func Uncategorized() CategoryRef {
	return CategoryRef{ID: "", Name: uncategorizedName, Slug: nil}
}

// FromCategory builds the canonical reference for a resolved category.
func FromCategory(cat *Category) CategoryRef {
	slug := cat.Slug
	return CategoryRef{ID: cat.ID.Hex(), Name: cat.Name, Slug: &slug}
}

// IsZero reports whether the reference carries no information. Used by the
// bson codec for omitempty.
func (r CategoryRef) IsZero() bool {
	return r.ID == "" && r.Name == "" && r.Slug == nil
}

// MarshalJSON always emits the full object shape, substituting the
// placeholder name when the reference is unresolved.
func (r CategoryRef) MarshalJSON() ([]byte, error) {
	name := r.Name
	if name == "" {
		name = uncategorizedName
	}
	return json.Marshal(struct {
		ID   string  `json:"id"`
		Name string  `json:"name"`
		Slug *string `json:"slug"`
	}{ID: r.ID, Name: name, Slug: r.Slug})
}

// MarshalBSONValue stores only the referenced category id; the full object is
// re-resolved on read. An empty reference is stored as null.
func (r CategoryRef) MarshalBSONValue() (bsontype.Type, []byte, error) {
	if r.ID == "" {
		return bson.MarshalValue(primitive.Null{})
	}
	return bson.MarshalValue(r.ID)
}

// UnmarshalBSONValue accepts every representation found in legacy documents:
// an embedded category object, a bare id string, an ObjectID, or null.
func (r *CategoryRef) UnmarshalBSONValue(t bsontype.Type, data []byte) error {
	rv := bson.RawValue{Type: t, Value: data}

	switch t {
	case bson.TypeEmbeddedDocument:
		var doc struct {
			ID   interface{} `bson:"_id"`
			Name string      `bson:"name"`
			Slug *string     `bson:"slug"`
		}
		if err := rv.Unmarshal(&doc); err != nil {
			return err
		}
		r.ID = stringifyID(doc.ID)
		r.Name = doc.Name
		if r.Name == "" {
			r.Name = uncategorizedName
		}
		r.Slug = doc.Slug
	case bson.TypeString:
		r.ID = rv.StringValue()
		r.Name = uncategorizedName
		r.Slug = nil
	case bson.TypeObjectID:
		oid, _ := rv.ObjectIDOK()
		r.ID = oid.Hex()
		r.Name = uncategorizedName
		r.Slug = nil
	default:
		// null, undefined, or anything unexpected
		*r = Uncategorized()
	}
	return nil
}

func stringifyID(id interface{}) string {
	switch v := id.(type) {
	case primitive.ObjectID:
		return v.Hex()
	case string:
		return v
	default:
		return ""
	}
}
