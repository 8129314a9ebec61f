package services

import (
	"context"
	"testing"

	"jewels-backend/models"
	apperrors "jewels-backend/pkg/errors"
	"jewels-backend/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// fakeCategoryRepo serves categories out of a slice.
type fakeCategoryRepo struct {
	categories []models.Category
}

func (f *fakeCategoryRepo) FindByID(ctx context.Context, id primitive.ObjectID) (*models.Category, error) {
	for i := range f.categories {
		if f.categories[i].ID == id {
			return &f.categories[i], nil
		}
	}
	return nil, repository.ErrNotFound
}

func (f *fakeCategoryRepo) FindBySlug(ctx context.Context, slug string) (*models.Category, error) {
	for i := range f.categories {
		if f.categories[i].Slug == slug {
			return &f.categories[i], nil
		}
	}
	return nil, repository.ErrNotFound
}

func (f *fakeCategoryRepo) FindAll(ctx context.Context) ([]models.Category, error) {
	return f.categories, nil
}

func (f *fakeCategoryRepo) Insert(ctx context.Context, category *models.Category) error {
	for i := range f.categories {
		if f.categories[i].Slug == category.Slug {
			return repository.ErrDuplicate
		}
	}
	if category.ID.IsZero() {
		category.ID = primitive.NewObjectID()
	}
	f.categories = append(f.categories, *category)
	return nil
}

func (f *fakeCategoryRepo) Update(ctx context.Context, id primitive.ObjectID, updates bson.M) (int64, error) {
	for i := range f.categories {
		if f.categories[i].ID != id {
			continue
		}
		if name, ok := updates["name"].(string); ok {
			f.categories[i].Name = name
		}
		if slug, ok := updates["slug"].(string); ok {
			f.categories[i].Slug = slug
		}
		if image, ok := updates["image"].(*string); ok {
			f.categories[i].Image = image
		}
		return 1, nil
	}
	return 0, nil
}

func (f *fakeCategoryRepo) Delete(ctx context.Context, id primitive.ObjectID) (int64, error) {
	for i := range f.categories {
		if f.categories[i].ID == id {
			f.categories = append(f.categories[:i], f.categories[i+1:]...)
			return 1, nil
		}
	}
	return 0, nil
}

func TestCreateProductStampsAndStores(t *testing.T) {
	repo := newFakeProductRepo()
	svc := NewProductService(repo, &fakeCategoryRepo{})

	created, err := svc.CreateProduct(context.Background(), &models.Product{
		Name:  "Silver Necklace",
		Price: 89.5,
		Stock: 10,
	})
	require.NoError(t, err)
	assert.False(t, created.ID.IsZero())
	assert.False(t, created.CreatedAt.IsZero())
	assert.NotNil(t, created.Images)

	stored, err := svc.GetProductByID(context.Background(), created.ID.Hex())
	require.NoError(t, err)
	assert.Equal(t, "Silver Necklace", stored.Name)
}

func TestUpdateProductUnknownIDIsNotFound(t *testing.T) {
	svc := NewProductService(newFakeProductRepo(), &fakeCategoryRepo{})

	_, err := svc.UpdateProduct(context.Background(), primitive.NewObjectID().Hex(), bson.M{"name": "x"})
	var appErr *apperrors.Error
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, 404, appErr.Code)
}

func TestUpdateProductMalformedIDIsNotFound(t *testing.T) {
	svc := NewProductService(newFakeProductRepo(), &fakeCategoryRepo{})

	_, err := svc.UpdateProduct(context.Background(), "garbage", bson.M{"name": "x"})
	var appErr *apperrors.Error
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, 404, appErr.Code)
}

func TestUpdateProductNoopIsSuccess(t *testing.T) {
	product := &models.Product{ID: primitive.NewObjectID(), Name: "Pearl Earrings", Stock: 3}
	svc := NewProductService(newFakeProductRepo(product), &fakeCategoryRepo{})

	// Setting the same name matches the document but changes nothing.
	updated, err := svc.UpdateProduct(context.Background(), product.ID.Hex(), bson.M{"name": "Pearl Earrings"})
	require.NoError(t, err)
	assert.Equal(t, "Pearl Earrings", updated.Name)
}

func TestDeleteProductTwiceIsNotFound(t *testing.T) {
	product := &models.Product{ID: primitive.NewObjectID(), Name: "Bracelet"}
	svc := NewProductService(newFakeProductRepo(product), &fakeCategoryRepo{})

	require.NoError(t, svc.DeleteProduct(context.Background(), product.ID.Hex()))

	err := svc.DeleteProduct(context.Background(), product.ID.Hex())
	var appErr *apperrors.Error
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, 404, appErr.Code)
}

func TestListProductsResolvesCategories(t *testing.T) {
	category := models.Category{ID: primitive.NewObjectID(), Name: "Rings", Slug: "rings"}
	withCategory := &models.Product{
		ID:       primitive.NewObjectID(),
		Name:     "Gold Ring",
		Category: models.CategoryRef{ID: category.ID.Hex()},
	}
	dangling := &models.Product{
		ID:       primitive.NewObjectID(),
		Name:     "Orphan",
		Category: models.CategoryRef{ID: primitive.NewObjectID().Hex()},
	}

	svc := NewProductService(newFakeProductRepo(withCategory, dangling), &fakeCategoryRepo{categories: []models.Category{category}})

	products, err := svc.ListProducts(context.Background())
	require.NoError(t, err)
	require.Len(t, products, 2)

	byName := make(map[string]models.Product)
	for _, p := range products {
		byName[p.Name] = p
	}
	assert.Equal(t, "Rings", byName["Gold Ring"].Category.Name)
	require.NotNil(t, byName["Gold Ring"].Category.Slug)
	assert.Equal(t, "rings", *byName["Gold Ring"].Category.Slug)

	assert.Equal(t, "Uncategorized", byName["Orphan"].Category.Name)
	assert.Empty(t, byName["Orphan"].Category.ID)
	assert.Nil(t, byName["Orphan"].Category.Slug)
}

func TestListProductsSkipsDocumentsWithoutID(t *testing.T) {
	valid := &models.Product{ID: primitive.NewObjectID(), Name: "Valid"}
	repo := newFakeProductRepo(valid)
	repo.products[primitive.NilObjectID] = &models.Product{Name: "No ID"}

	svc := NewProductService(repo, &fakeCategoryRepo{})

	products, err := svc.ListProducts(context.Background())
	require.NoError(t, err)
	require.Len(t, products, 1)
	assert.Equal(t, "Valid", products[0].Name)
}

func TestGetProductByIDMalformed(t *testing.T) {
	svc := NewProductService(newFakeProductRepo(), &fakeCategoryRepo{})

	_, err := svc.GetProductByID(context.Background(), "nope")
	var appErr *apperrors.Error
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, 404, appErr.Code)
}
