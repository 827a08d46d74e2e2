package main

import (
	"fmt"
	"log"
	"net/http"

	"github.com/talentindo/hrms-backend-go/internal/config"
	appHTTP "github.com/talentindo/hrms-backend-go/internal/handler/http"
	"github.com/talentindo/hrms-backend-go/internal/pkg/database"
	"github.com/talentindo/hrms-backend-go/internal/pkg/jwt"
	"github.com/talentindo/hrms-backend-go/internal/pkg/oauth"
	"github.com/talentindo/hrms-backend-go/internal/pkg/storage"
	"github.com/talentindo/hrms-backend-go/internal/repository/postgresql"
	attendanceService "github.com/talentindo/hrms-backend-go/internal/service/attendance"
	authService "github.com/talentindo/hrms-backend-go/internal/service/auth"
	authzService "github.com/talentindo/hrms-backend-go/internal/service/authz"
	departmentService "github.com/talentindo/hrms-backend-go/internal/service/department"
	employeeService "github.com/talentindo/hrms-backend-go/internal/service/employee"
	"github.com/talentindo/hrms-backend-go/internal/service/file"
	requestService "github.com/talentindo/hrms-backend-go/internal/service/request"
	userService "github.com/talentindo/hrms-backend-go/internal/service/user"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Println("Error loading config:", err)
		return
	}

	db, err := database.NewPostgreSQLDB(cfg.DatabaseURL())
	if err != nil {
		fmt.Println("Error connecting to database:", err)
		return
	}

	userRepo := postgresql.NewUserRepository(db)
	employeeRepo := postgresql.NewEmployeeRepository(db)
	departmentRepo := postgresql.NewDepartmentRepository(db)
	requestRepo := postgresql.NewRequestRepository(db)
	attendanceRepo := postgresql.NewAttendanceRepository(db)

	jwtService := jwt.NewJWTService(cfg.JWT.Secret, cfg.JWT.AccessExpiration, cfg.JWT.RefreshExpiration)
	googleService := oauth.NewGoogleService(cfg.OAuth2Google.ClientID, cfg.OAuth2Google.ClientSecret, cfg.OAuth2Google.RedirectURL, cfg.OAuth2Google.Scopes)

	var fileStorage storage.FileStorage
	switch cfg.Storage.Type {
	case "local":
		fileStorage, err = storage.NewLocalStorage(cfg.Storage.BasePath, cfg.Storage.BaseURL)
		if err != nil {
			log.Fatal("Failed to initialize local storage:", err)
		}
	default:
		log.Fatal("Unsupported storage type: ", cfg.Storage.Type)
	}

	resolver := authzService.NewResolver(userRepo, departmentRepo)
	fileSvc := file.NewService(fileStorage, employeeRepo)
	authSvc := authService.NewService(userRepo, jwtService, googleService)
	userSvc := userService.NewService(userRepo, employeeRepo, resolver)
	employeeSvc := employeeService.NewService(employeeRepo)
	departmentSvc := departmentService.NewService(departmentRepo, userRepo)
	requestSvc := requestService.NewService(db, requestRepo, employeeRepo, resolver, fileStorage)
	attendanceSvc := attendanceService.NewService(attendanceRepo, cfg.Device)

	authHandler := appHTTP.NewAuthHandler(authSvc, jwtService)
	userHandler := appHTTP.NewUserHandler(userSvc)
	employeeHandler := appHTTP.NewEmployeeHandler(employeeSvc, fileSvc)
	requestHandler := appHTTP.NewRequestHandler(requestSvc)
	attendanceHandler := appHTTP.NewAttendanceHandler(attendanceSvc)
	departmentHandler := appHTTP.NewDepartmentHandler(departmentSvc)

	router := appHTTP.NewRouter(
		cfg,
		jwtService,
		authHandler,
		userHandler,
		employeeHandler,
		requestHandler,
		attendanceHandler,
		departmentHandler,
	)

	port := fmt.Sprintf(":%d", cfg.App.Port)
	fmt.Printf("Server running at http://localhost%s\n", port)
	if err := http.ListenAndServe(port, router); err != nil {
		fmt.Println("Server error:", err)
	}
}
