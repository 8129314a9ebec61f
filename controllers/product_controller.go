package controllers

import (
	"fmt"
	"mime/multipart"
	"net/http"
	"strconv"
	"strings"

	"jewels-backend/models"
	apperrors "jewels-backend/pkg/errors"
	"jewels-backend/pkg/media"
	"jewels-backend/services"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson"
	"go.uber.org/zap"
)

// ProductController serves the catalog routes. Image files are delegated to
// the media host and stored as permanent URLs.
type ProductController struct {
	products *services.ProductService
	uploader media.Uploader
}

func NewProductController(products *services.ProductService, uploader media.Uploader) *ProductController {
	return &ProductController{products: products, uploader: uploader}
}

// productForm is the multipart payload shared by create and update.
type productForm struct {
	Name             string
	Price            float64
	Category         string
	Description      string
	ShortDescription string
	SKU              string
	Stock            int
	Weight           string
	Dimensions       string
	Featured         bool
}

func parseProductForm(c *gin.Context) (*productForm, error) {
	price, err := strconv.ParseFloat(c.PostForm("price"), 64)
	if err != nil || price < 0 {
		return nil, apperrors.Validation("Invalid price")
	}
	stock, err := strconv.Atoi(c.PostForm("stock"))
	if err != nil || stock < 0 {
		return nil, apperrors.Validation("Invalid stock")
	}
	name := strings.TrimSpace(c.PostForm("name"))
	if name == "" {
		return nil, apperrors.Validation("Product name is required")
	}

	featured, _ := strconv.ParseBool(c.DefaultPostForm("featured", "false"))
	return &productForm{
		Name:             name,
		Price:            price,
		Category:         strings.TrimSpace(c.PostForm("category")),
		Description:      c.PostForm("description"),
		ShortDescription: c.PostForm("shortDescription"),
		SKU:              c.PostForm("sku"),
		Stock:            stock,
		Weight:           c.PostForm("weight"),
		Dimensions:       c.PostForm("dimensions"),
		Featured:         featured,
	}, nil
}

// uploadFiles pushes each attached file to the media host.
func (pc *ProductController) uploadFiles(c *gin.Context, files []*multipart.FileHeader, folder string) ([]string, error) {
	urls := make([]string, 0, len(files))
	for _, fh := range files {
		file, err := fh.Open()
		if err != nil {
			return nil, apperrors.Dependency("Image upload failed", err)
		}
		url, err := pc.uploader.Upload(c.Request.Context(), file, folder)
		file.Close()
		if err != nil {
			return nil, apperrors.Dependency(fmt.Sprintf("Image upload failed for %s", fh.Filename), err)
		}
		urls = append(urls, url)
	}
	return urls, nil
}

// AddProduct handles POST /api/products/add-product.
func (pc *ProductController) AddProduct(c *gin.Context) {
	form, err := parseProductForm(c)
	if err != nil {
		apperrors.Respond(c, err)
		return
	}

	var images []string
	if mpForm, err := c.MultipartForm(); err == nil && mpForm != nil {
		images, err = pc.uploadFiles(c, mpForm.File["images"], "products")
		if err != nil {
			apperrors.Respond(c, err)
			return
		}
	}

	product := &models.Product{
		Name:             form.Name,
		Price:            form.Price,
		Category:         models.CategoryRef{ID: form.Category},
		Description:      form.Description,
		ShortDescription: form.ShortDescription,
		SKU:              form.SKU,
		Stock:            form.Stock,
		Weight:           form.Weight,
		Dimensions:       form.Dimensions,
		Featured:         form.Featured,
		Images:           images,
	}

	created, err := pc.products.CreateProduct(c.Request.Context(), product)
	if err != nil {
		apperrors.Respond(c, err)
		return
	}

	zap.L().Info("product created", zap.String("product_id", created.ID.Hex()))
	c.JSON(http.StatusOK, created)
}

// UpdateProduct handles PUT /api/products/update-product/:id. Kept image URLs
// arrive in existing_images as a comma-separated list; new files are uploaded
// and appended.
func (pc *ProductController) UpdateProduct(c *gin.Context) {
	form, err := parseProductForm(c)
	if err != nil {
		apperrors.Respond(c, err)
		return
	}

	var images []string
	for _, url := range strings.Split(c.PostForm("existing_images"), ",") {
		if url = strings.TrimSpace(url); url != "" {
			images = append(images, url)
		}
	}
	if mpForm, err := c.MultipartForm(); err == nil && mpForm != nil {
		uploaded, err := pc.uploadFiles(c, mpForm.File["images"], "products")
		if err != nil {
			apperrors.Respond(c, err)
			return
		}
		images = append(images, uploaded...)
	}
	if images == nil {
		images = []string{}
	}

	updates := bson.M{
		"name":             form.Name,
		"price":            form.Price,
		"category":         form.Category,
		"description":      form.Description,
		"shortDescription": form.ShortDescription,
		"sku":              form.SKU,
		"stock":            form.Stock,
		"weight":           form.Weight,
		"dimensions":       form.Dimensions,
		"featured":         form.Featured,
		"images":           images,
	}

	updated, err := pc.products.UpdateProduct(c.Request.Context(), c.Param("id"), updates)
	if err != nil {
		apperrors.Respond(c, err)
		return
	}
	c.JSON(http.StatusOK, updated)
}

// DeleteProduct handles DELETE /api/products/delete-product/:id.
func (pc *ProductController) DeleteProduct(c *gin.Context) {
	if err := pc.products.DeleteProduct(c.Request.Context(), c.Param("id")); err != nil {
		apperrors.Respond(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Product deleted successfully"})
}

// ListProducts handles GET /api/products/all.
func (pc *ProductController) ListProducts(c *gin.Context) {
	products, err := pc.products.ListProducts(c.Request.Context())
	if err != nil {
		apperrors.Respond(c, err)
		return
	}
	c.JSON(http.StatusOK, products)
}

// GetProduct handles GET /api/products/:id.
func (pc *ProductController) GetProduct(c *gin.Context) {
	product, err := pc.products.GetProductByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		apperrors.Respond(c, err)
		return
	}
	c.JSON(http.StatusOK, product)
}
