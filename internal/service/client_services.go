package service

import (
	"github.com/MKhiriev/go-cv-tailor/internal/adapter"
	"github.com/MKhiriev/go-cv-tailor/internal/config"
	"github.com/MKhiriev/go-cv-tailor/internal/logger"
	"github.com/MKhiriev/go-cv-tailor/internal/store"
)

type ClientServices struct {
	AuthService   ClientAuthService
	LedgerService ClientLedgerService
	TailorService ClientTailorService
	AdminService  ClientAdminService
	SyncJob       ClientSyncJob
}

func NewClientServices(storages *store.ClientStorages, serverAdapter adapter.ServerAdapter, tailorAdapter adapter.TailorAdapter, cfg config.ClientConfig, logger *logger.Logger) *ClientServices {
	ledgerSvc := NewClientLedgerService(storages, serverAdapter, logger)

	return &ClientServices{
		AuthService:   NewClientAuthService(storages, serverAdapter, tailorAdapter, logger),
		LedgerService: ledgerSvc,
		TailorService: NewClientTailorService(storages, serverAdapter, tailorAdapter, cfg.Throttle, logger),
		AdminService:  NewClientAdminService(storages, serverAdapter, logger),
		SyncJob:       NewClientSyncJob(ledgerSvc),
	}
}
