package domain

// Agent is a field collector. Read-only from the core's perspective; the
// record is owned by the data store.
type Agent struct {
	ID                     string  `json:"id" bson:"_id,omitempty"`
	DisplayName            string  `json:"display_name" bson:"display_name"`
	Code                   string  `json:"code" bson:"code"`
	Territory              string  `json:"territory" bson:"territory"`
	Phone                  string  `json:"phone" bson:"phone"`
	InstitutionID          string  `json:"institution_id,omitempty" bson:"institution_id,omitempty"`
	MonthlyObjectiveAmount float64 `json:"monthly_objective_amount" bson:"monthly_objective_amount"`
}

// AgentStatistics is purely derived — recomputed on demand from the ledger,
// never persisted by the core. A pre-aggregated copy may come from the store;
// when that read fails the aggregator recomputes the same figures client-side.
type AgentStatistics struct {
	AgentID          string  `json:"agent_id"`
	CollectedTotal   float64 `json:"collected_total"`
	CollectedMonth   float64 `json:"collected_month"`
	CollectionCount  int64   `json:"collection_count"`
	CommercantsCount int64   `json:"commercants_count"`
}
