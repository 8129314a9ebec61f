package controllers

import (
	"net/http"
	"strings"

	apperrors "jewels-backend/pkg/errors"
	"jewels-backend/pkg/media"
	"jewels-backend/services"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type CategoryController struct {
	categories *services.CategoryService
	uploader   media.Uploader
}

func NewCategoryController(categories *services.CategoryService, uploader media.Uploader) *CategoryController {
	return &CategoryController{categories: categories, uploader: uploader}
}

// uploadCategoryImage pushes the optional image file to the media host and
// returns its URL, or nil when no file was attached.
func (cc *CategoryController) uploadCategoryImage(c *gin.Context) (*string, error) {
	fh, err := c.FormFile("image")
	if err != nil {
		return nil, nil
	}
	file, err := fh.Open()
	if err != nil {
		return nil, apperrors.Dependency("Image upload failed", err)
	}
	defer file.Close()

	url, err := cc.uploader.Upload(c.Request.Context(), file, "categories")
	if err != nil {
		return nil, apperrors.Dependency("Image upload failed", err)
	}
	return &url, nil
}

// AddCategory handles POST /api/category/add-category.
func (cc *CategoryController) AddCategory(c *gin.Context) {
	name := strings.TrimSpace(c.PostForm("name"))
	slug := strings.TrimSpace(c.PostForm("slug"))
	if name == "" || slug == "" {
		apperrors.Respond(c, apperrors.Validation("Name and slug are required"))
		return
	}

	image, err := cc.uploadCategoryImage(c)
	if err != nil {
		apperrors.Respond(c, err)
		return
	}

	category, err := cc.categories.CreateCategory(c.Request.Context(), name, slug, image)
	if err != nil {
		apperrors.Respond(c, err)
		return
	}

	zap.L().Info("category created", zap.String("category_id", category.ID.Hex()), zap.String("slug", slug))
	c.JSON(http.StatusOK, category)
}

// UpdateCategory handles PUT /api/category/update-category/:id. A new file
// replaces the image; otherwise image_url_existing, if set, is kept.
func (cc *CategoryController) UpdateCategory(c *gin.Context) {
	name := strings.TrimSpace(c.PostForm("name"))
	slug := strings.TrimSpace(c.PostForm("slug"))
	if name == "" || slug == "" {
		apperrors.Respond(c, apperrors.Validation("Name and slug are required"))
		return
	}

	image, err := cc.uploadCategoryImage(c)
	if err != nil {
		apperrors.Respond(c, err)
		return
	}
	if image == nil {
		if existing := strings.TrimSpace(c.PostForm("image_url_existing")); existing != "" {
			image = &existing
		}
	}

	category, err := cc.categories.UpdateCategory(c.Request.Context(), c.Param("id"), name, slug, image)
	if err != nil {
		apperrors.Respond(c, err)
		return
	}
	c.JSON(http.StatusOK, category)
}

// DeleteCategory handles DELETE /api/category/delete-category/:id.
func (cc *CategoryController) DeleteCategory(c *gin.Context) {
	if err := cc.categories.DeleteCategory(c.Request.Context(), c.Param("id")); err != nil {
		apperrors.Respond(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Category deleted"})
}

// ListCategories handles GET /api/category/all-categories.
func (cc *CategoryController) ListCategories(c *gin.Context) {
	categories, err := cc.categories.ListCategories(c.Request.Context())
	if err != nil {
		apperrors.Respond(c, err)
		return
	}
	c.JSON(http.StatusOK, categories)
}

// GetCategory handles GET /api/category/single-category/:id.
func (cc *CategoryController) GetCategory(c *gin.Context) {
	category, err := cc.categories.GetCategoryByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		apperrors.Respond(c, err)
		return
	}
	c.JSON(http.StatusOK, category)
}
