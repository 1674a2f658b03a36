package router

import (
	"github.com/Ryujino3296/Slum-Scholar-Backend/internal/config"
	"github.com/Ryujino3296/Slum-Scholar-Backend/internal/gateway"
	"github.com/Ryujino3296/Slum-Scholar-Backend/internal/handler"
	"github.com/Ryujino3296/Slum-Scholar-Backend/internal/middleware"
	"github.com/Ryujino3296/Slum-Scholar-Backend/internal/pkg"
	"github.com/Ryujino3296/Slum-Scholar-Backend/internal/repository/mysql"
	"github.com/Ryujino3296/Slum-Scholar-Backend/internal/service"
	"github.com/Ryujino3296/Slum-Scholar-Backend/internal/ws"

	"github.com/gin-contrib/gzip"
	"github.com/gin-gonic/gin"
)

func InitRouter(cfg *config.Config) *gin.Engine {
	r := gin.Default()
	r.Use(gzip.Gzip(gzip.DefaultCompression))

	emailCfg := pkg.SMTPConfig{
		Host:     cfg.SMTPHost,
		Port:     cfg.SMTPPort,
		Username: cfg.SMTPUsername,
		Password: cfg.SMTPPassword,
		From:     cfg.SMTPFrom,
	}
	notify := service.EmailNotifier(emailCfg)

	gw := gateway.NewRazorpayClient(cfg.RazorpayKeyID, cfg.RazorpayKeySecret)
	hub := ws.NewHub()

	user := handler.NewUserHandler(service.NewUserService(mysql.DB))
	blog := handler.NewBlogHandler(service.NewBlogService(mysql.DB))
	volunteer := handler.NewVolunteerHandler(service.NewVolunteerService(mysql.DB, notify))
	payment := handler.NewPaymentHandler(
		service.NewPaymentService(mysql.DB, gw, cfg.RazorpayKeySecret, cfg.CheckoutBaseURL, notify),
		hub,
	)

	// 注册登录相关接口
	authGroup := r.Group("/api/auth")
	{
		authGroup.POST("/register", user.Register)
		authGroup.POST("/login", user.Login)
		authGroup.POST("/logout", middleware.AuthMiddleware(), user.Logout)
	}

	// token 相关接口
	tokenGroup := r.Group("/api/token")
	{
		tokenGroup.POST("/refresh", user.TokenRefresh)
	}

	// 用户相关接口
	userGroup := r.Group("/users")
	userGroup.Use(middleware.AuthMiddleware())
	{
		userGroup.GET("/profile", user.Profile)
		userGroup.PUT("/profile", user.UpdateProfile)
	}

	// 用户管理接口（管理员）
	userAdmin := r.Group("/users")
	userAdmin.Use(middleware.AuthMiddleware(), middleware.AdminMiddleware())
	{
		userAdmin.GET("", user.List)
		userAdmin.GET("/:id", user.Get)
		userAdmin.PUT("/:id", user.Update)
		userAdmin.DELETE("/:id", user.Delete)
		userAdmin.PUT("/:id/make-admin", user.MakeAdmin)
		userAdmin.PUT("/:id/remove-admin", user.RemoveAdmin)
	}

	// 博客相关接口
	blogGroup := r.Group("/blogs")
	{
		blogGroup.GET("", blog.List)
		blogGroup.POST("", middleware.AuthMiddleware(), blog.Create)
		blogGroup.GET("/my-blogs", middleware.AuthMiddleware(), blog.MyBlogs)
		blogGroup.PUT("/:id", middleware.AuthMiddleware(), blog.Update)
		blogGroup.DELETE("/:id", middleware.AuthMiddleware(), blog.Delete)
	}

	// 志愿者申请相关接口
	volunteerGroup := r.Group("/volunteer-requests")
	volunteerGroup.Use(middleware.AuthMiddleware())
	{
		volunteerGroup.POST("", volunteer.Create)
		volunteerGroup.GET("/my-requests", volunteer.MyRequests)
		volunteerGroup.GET("/all", middleware.AdminMiddleware(), volunteer.ListAll)
		volunteerGroup.PUT("/:id/respond", middleware.AdminMiddleware(), volunteer.Respond)
		volunteerGroup.GET("/:id", volunteer.Get)
	}

	// 付款申请与交易接口
	paymentGroup := r.Group("/payments")
	paymentGroup.Use(middleware.AuthMiddleware())
	{
		paymentGroup.POST("/request", payment.Create)
		paymentGroup.GET("/requests", middleware.AdminMiddleware(), payment.ListAll)
		paymentGroup.GET("/my-requests", payment.MyRequests)
		paymentGroup.PUT("/request/:id/respond", middleware.AdminMiddleware(), payment.Respond)
		paymentGroup.GET("/request/:id/qr", payment.CheckoutQR)
		paymentGroup.POST("/verify", payment.Verify)
		paymentGroup.GET("/my-transactions", payment.MyTransactions)
		paymentGroup.GET("/transactions", middleware.AdminMiddleware(), payment.AllTransactions)
	}

	// 管理端实时交易流
	wsGroup := r.Group("/ws")
	wsGroup.Use(middleware.AuthMiddleware(), middleware.AdminMiddleware())
	{
		wsGroup.GET("/transactions", payment.TransactionFeed)
	}

	return r
}
