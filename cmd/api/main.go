package main

import (
	"app/internal/config"
	"app/internal/domain/model"
	"app/internal/handler"
	"app/internal/infra/db"
	infraRepo "app/internal/infra/repository"
	"app/internal/mail"
	"app/internal/server"
	"app/internal/token"
	"app/internal/usecase"
	auth "app/internal/usecase/auth_usecase"
	"app/internal/validator"

	"github.com/joho/godotenv"
	"github.com/labstack/gommon/log"
)

func main() {
	//.envがあれば読む（本番は環境変数直指定）
	if err := godotenv.Load(); err != nil {
		log.Infof(".env not loaded: %v", err)
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	//DB接続
	gormDB, err := db.Connect(cfg)
	if err != nil {
		log.Fatalf("db connect: %v", err)
	}
	if err := gormDB.AutoMigrate(&model.User{}); err != nil {
		log.Fatalf("migrate: %v", err)
	}

	//Repository（GORM実装）生成
	userRepo := infraRepo.NewUserRepository(gormDB)

	//token service（署名キー無しならここで起動失敗）
	tokenSvc, err := token.NewService(cfg.JWTSecret)
	if err != nil {
		log.Fatalf("token service: %v", err)
	}

	//usecaseに渡す部品
	hasher := auth.NewBcryptPasswordHasher(12)
	verifier := auth.NewBcryptPasswordVerifier()
	classifier := auth.NewRoleClassifier(cfg.RolePolicy)
	mailer := mail.NewSender(cfg)
	authValidator := validator.NewAuthValidator()
	clock := &auth.RealClock{}

	//Usecase生成
	authUC := usecase.NewAuthUsecase(
		cfg, userRepo, tokenSvc,
		hasher, verifier, classifier,
		mailer, authValidator, clock,
	)

	//Handler生成
	authH := handler.NewAuthHandler(authUC, cfg.CookieSecure)
	userH := handler.NewUserHandler(authUC)
	dashH := handler.NewDashboardHandler()

	//Server起動
	e := server.New(tokenSvc, userRepo, cfg.SingleSession, authH, userH, dashH)

	addr := cfg.Port
	if addr[0] != ':' {
		addr = ":" + addr
	}

	if err := e.Start(addr); err != nil {
		log.Fatalf("server: %v", err)
	}
}
