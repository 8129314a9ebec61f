package routes

import (
	"jewels-backend/controllers"
	"jewels-backend/middleware"
	"jewels-backend/services"

	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"
)

// Controllers bundles every route handler for registration.
type Controllers struct {
	Auth     *controllers.AuthController
	Products *controllers.ProductController
	Category *controllers.CategoryController
	Cart     *controllers.CartController
	Wishlist *controllers.WishlistController
	AI       *controllers.AIController
}

// Register wires the full HTTP surface. Admin writes sit behind
// RequireAuth+RequireAdmin; cart and wishlist are caller-scoped.
func Register(r *gin.Engine, c Controllers, tokens *services.TokenService, blacklist services.Blacklist) {
	authRequired := middleware.RequireAuth(tokens, blacklist)
	adminOnly := middleware.RequireAdmin()
	loginLimiter := middleware.NewRateLimiter(rate.Limit(5), 10)

	api := r.Group("/api")

	auth := api.Group("/auth")
	{
		auth.POST("/signup", loginLimiter.Middleware(), c.Auth.Signup)
		auth.POST("/login", loginLimiter.Middleware(), c.Auth.Login)
		auth.POST("/logout", authRequired, c.Auth.Logout)
		auth.GET("/google", c.Auth.GoogleLogin)
		auth.GET("/google/callback", c.Auth.GoogleCallback)
	}

	products := api.Group("/products")
	{
		products.GET("/all", c.Products.ListProducts)
		products.GET("/:id", c.Products.GetProduct)
		products.POST("/add-product", authRequired, adminOnly, c.Products.AddProduct)
		products.PUT("/update-product/:id", authRequired, adminOnly, c.Products.UpdateProduct)
		products.DELETE("/delete-product/:id", authRequired, adminOnly, c.Products.DeleteProduct)
	}

	category := api.Group("/category")
	{
		category.GET("/all-categories", c.Category.ListCategories)
		category.GET("/single-category/:id", c.Category.GetCategory)
		category.POST("/add-category", authRequired, adminOnly, c.Category.AddCategory)
		category.PUT("/update-category/:id", authRequired, adminOnly, c.Category.UpdateCategory)
		category.DELETE("/delete-category/:id", authRequired, adminOnly, c.Category.DeleteCategory)
	}

	cart := api.Group("/cart", authRequired)
	{
		cart.GET("", c.Cart.GetCart)
		cart.POST("/add", c.Cart.AddToCart)
		cart.PUT("/update/:productId", c.Cart.UpdateCartItem)
		cart.DELETE("/remove/:productId", c.Cart.RemoveFromCart)
	}

	wishlist := api.Group("/wishlist", authRequired)
	{
		wishlist.GET("", c.Wishlist.GetWishlist)
		wishlist.POST("/add", c.Wishlist.AddToWishlist)
		wishlist.DELETE("/remove/:productId", c.Wishlist.RemoveFromWishlist)
	}

	ai := api.Group("/ai", authRequired, adminOnly)
	{
		ai.POST("/generate-description", c.AI.GenerateDescription)
	}
}
