package contracts

import "github.com/marcojulioc/Finanzas-Personales-2.0-sub000/internal/domain/dashboard"

type DashboardResponse struct {
	Summary *dashboard.Summary `json:"summary"`
}
