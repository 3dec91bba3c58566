package service

import (
	"github.com/MKhiriev/go-cv-tailor/internal/config"
	"github.com/MKhiriev/go-cv-tailor/internal/logger"
	"github.com/MKhiriev/go-cv-tailor/internal/store"
)

type Services struct {
	AuthService    AuthService
	CreditService  CreditService
	AdminService   AdminService
	BillingService BillingService
}

func NewServices(storages *store.Storages, cfg config.StructuredConfig, logger *logger.Logger) *Services {
	return &Services{
		AuthService:    NewAuthService(storages.UserRepository, storages.TokenStore, cfg.App, logger),
		CreditService:  NewCreditService(storages.CreditRepository, logger),
		AdminService:   NewAdminService(storages.AdminRepository, storages.CreditRepository, logger),
		BillingService: NewBillingService(storages.CreditRepository, cfg.Billing, logger),
	}
}
