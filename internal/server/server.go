package server

import (
	"context"
	"net/http"
	"net/url"
	"strings"

	"github.com/agrolink/agrolink-backend/internal/handler"
	appmw "github.com/agrolink/agrolink-backend/internal/middleware"
	"github.com/agrolink/agrolink-backend/internal/repository"
	"github.com/agrolink/agrolink-backend/internal/service"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"gorm.io/gorm"
)

type Server struct {
	e         *echo.Echo
	userRepo  repository.UserRepository
	reqRepo   repository.RequestRepository
	listRepo  repository.ListingRepository
	chatRepo  repository.ChatRepository
	notifRepo repository.NotificationRepository
	sha       string
	build     string
}

// New builds the echo server and its route table. db may be nil; SetDB
// injects the connection once it is up. A broken auth setup is fatal:
// serving the authed surface without token verification is worse than not
// serving at all.
func New(db *gorm.DB, sha, buildTime string) (*Server, error) {
	e := echo.New()
	e.HideBanner = true
	e.Use(middleware.Recover())
	e.Use(middleware.Logger())
	e.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowMethods:     []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodPatch, http.MethodDelete, http.MethodOptions},
		AllowHeaders:     []string{"Content-Type", "Authorization"},
		AllowCredentials: true,
		AllowOriginFunc: func(origin string) (bool, error) {
			low := strings.ToLower(origin)
			if strings.HasPrefix(low, "http://localhost:") || strings.HasPrefix(low, "http://127.0.0.1:") ||
				strings.HasPrefix(low, "https://localhost:") || strings.HasPrefix(low, "https://127.0.0.1:") {
				return true, nil
			}
			u, err := url.Parse(origin)
			if err != nil {
				return false, nil
			}
			if u.Scheme != "http" && u.Scheme != "https" {
				return false, nil
			}
			if strings.HasSuffix(u.Hostname(), "vercel.app") {
				return true, nil
			}
			return false, nil
		},
	}))

	userRepo := repository.NewUserRepository(db)
	reqRepo := repository.NewRequestRepository(db)
	listRepo := repository.NewListingRepository(db)
	chatRepo := repository.NewChatRepository(db)
	notifRepo := repository.NewNotificationRepository(db)

	notifSvc := service.NewNotificationService(notifRepo, userRepo)
	userSvc := service.NewUserService(userRepo, listRepo)
	reqSvc := service.NewRequestService(reqRepo, userRepo, listRepo, notifSvc)
	contractSvc := service.NewContractService(reqRepo, userRepo, notifSvc)
	listSvc := service.NewListingService(listRepo, userRepo)
	chatSvc := service.NewChatService(chatRepo, userRepo)

	authMw, err := appmw.NewAuthMiddleware(context.Background())
	if err != nil {
		return nil, err
	}

	userHandler := handler.NewUserHandler(userSvc, authMw.Client())
	reqHandler := handler.NewRequestHandler(reqSvc)
	contractHandler := handler.NewContractHandler(contractSvc)
	listHandler := handler.NewListingHandler(listSvc)
	chatHandler := handler.NewChatHandler(chatSvc)
	notifHandler := handler.NewNotificationHandler(notifSvc)

	e.GET("/healthz", func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]string{
			"ok":         "true",
			"git_sha":    sha,
			"build_time": buildTime,
		})
	})

	api := e.Group("/api")

	api.POST("/complete-profile", userHandler.CompleteProfile)
	api.GET("/get-profile", userHandler.GetProfile)
	api.GET("/farmer", userHandler.GetFarmer)
	api.GET("/contractor-profile", userHandler.GetContractorProfile)
	api.POST("/users/filter", userHandler.Filter)

	register := func(method, path string, h echo.HandlerFunc) {
		api.Add(method, path, h, authMw.RequireAuth)
	}

	register(http.MethodPost, "/purchase-requests", reqHandler.Create)
	register(http.MethodGet, "/purchase-requests", reqHandler.ListMine)
	register(http.MethodGet, "/purchase-requests/interests", reqHandler.ListInterestedFarmers)
	register(http.MethodPost, "/purchase-requests/:id/interest", reqHandler.ExpressInterest)
	register(http.MethodGet, "/farmer/purchase-requests", contractHandler.Search)
	register(http.MethodPost, "/farmer/confirm-contract", contractHandler.Confirm)
	register(http.MethodGet, "/contractor/:userId", userHandler.GetContractorAccount)
	register(http.MethodPut, "/contractor/:userId", userHandler.UpdateContractorAccount)
	register(http.MethodPost, "/listings", listHandler.Create)
	register(http.MethodGet, "/listings", listHandler.ListMine)
	register(http.MethodGet, "/chat-rooms", chatHandler.ListRooms)
	register(http.MethodGet, "/chat-rooms/:key/messages", chatHandler.ListMessages)
	register(http.MethodPost, "/chat-rooms/:key/messages", chatHandler.PostMessage)
	register(http.MethodGet, "/me/notifications", notifHandler.ListMine)
	register(http.MethodPost, "/me/notifications/read", notifHandler.MarkAllRead)

	return &Server{
		e:         e,
		userRepo:  userRepo,
		reqRepo:   reqRepo,
		listRepo:  listRepo,
		chatRepo:  chatRepo,
		notifRepo: notifRepo,
		sha:       sha,
		build:     buildTime,
	}, nil
}

func (s *Server) Start(addr string) error {
	return s.e.Start(addr)
}

// SetDB injects a late database connection into every repository. The
// server can accept traffic before the database is reachable.
func (s *Server) SetDB(db *gorm.DB) {
	s.userRepo.SetDB(db)
	s.reqRepo.SetDB(db)
	s.listRepo.SetDB(db)
	s.chatRepo.SetDB(db)
	s.notifRepo.SetDB(db)
}
