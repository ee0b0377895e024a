package services

import (
	"ops-dashboard/internal/businesshours"
	"ops-dashboard/internal/config"
	"ops-dashboard/internal/repository"
	"ops-dashboard/internal/validation"
)

// NewServiceContainer wires every service over one repository and calendar
func NewServiceContainer(repo repository.Repository, cal *businesshours.Calendar, limits config.ValidationConfig) *ServiceContainer {
	tickets := NewTicketService(repo, cal, validation.NewTicketValidatorWithConfig(cal, limits))
	return &ServiceContainer{
		TicketService:     tickets,
		ReportingService:  NewReportingService(tickets, cal),
		CalculatorService: NewCalculatorService(cal),
	}
}
