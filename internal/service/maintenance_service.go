package service

import (
	"go-inventory-billing/internal/repository"

	"github.com/sirupsen/logrus"
)

type MaintenanceService interface {
	// ClearAll removes every stock, supplier, bill, item and detail row. Users are kept.
	ClearAll() error
}

type maintenanceService struct {
	store repository.Store
	pub   Publisher
	log   *logrus.Logger
}

func NewMaintenanceService(store repository.Store, pub Publisher, log *logrus.Logger) MaintenanceService {
	return &maintenanceService{store: store, pub: orNop(pub), log: log}
}

func (s *maintenanceService) ClearAll() error {
	err := s.store.Transaction(func(tx repository.Store) error {
		// children first so foreign keys never dangle
		if err := tx.Sales().DeleteAll(); err != nil {
			return err
		}
		if err := tx.Purchases().DeleteAll(); err != nil {
			return err
		}
		if err := tx.Stocks().DeleteAll(); err != nil {
			return err
		}
		return tx.Suppliers().DeleteAll()
	})
	if err != nil {
		logUnexpected(s.log, "maintenanceService", "ClearAll", nil, err)
		return err
	}

	s.log.Warn("all inventory data cleared")
	s.pub.Publish(Event{Type: EventDataCleared, Action: "clear_all"})
	return nil
}
