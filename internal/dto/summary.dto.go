package dto

type ClientSummary struct {
	Total     int64 `gorm:"column:total" json:"total"`
	Active    int64 `gorm:"column:ativos" json:"ativos"`
	Concluded int64 `gorm:"column:concluidos" json:"concluidos"`
	Inactive  int64 `gorm:"column:inativos" json:"inativos"`
}

type EstablishmentSummary struct {
	Total  int64            `json:"total"`
	ByType map[string]int64 `json:"por_tipo"`
}

type Dashboard struct {
	TotalClients              int64 `json:"total_clientes"`
	CommercialEstablishments  int64 `json:"total_comerciais"`
	ResidentialEstablishments int64 `json:"total_residenciais"`
	ClientsWithoutOffers      int64 `json:"clientes_sem_ofertas"`
}
