package domain

import "time"

// Tags de snapshot. "sync" é gravado após cada sincronização bem-sucedida;
// "eod" é o snapshot forçado de fim de dia, idempotente por dia calendário
// no fuso de referência.
const (
	SnapshotTagSync = "sync"
	SnapshotTagEOD  = "eod"
)

// SnapshotPayload é o estado bruto capturado junto com a tabela agregada,
// permitindo reprocessar a agregação sobre dados históricos.
type SnapshotPayload struct {
	Accounts      []*Account     `json:"accounts"`
	Opportunities []*Opportunity `json:"opportunities"`
	LineItems     []*ProductLine `json:"opportunity_line_items"`
}

// Snapshot é uma captura imutável do estado em um ponto no tempo.
// Nunca é alterado após a gravação; consultas históricas usam o snapshot
// mais recente com CapturedAt <= instante pedido.
type Snapshot struct {
	ID           string           `json:"id"`
	Tag          string           `json:"tag"`
	SnapshotDate time.Time        `json:"snapshot_date"`
	CapturedAt   time.Time        `json:"captured_at"`
	Table        *ARRTable        `json:"arr_table"`
	Payload      *SnapshotPayload `json:"payload,omitempty"`
	CreatedAt    time.Time        `json:"created_at"`
}

// SnapshotInfo são os metadados de um snapshot, para listagem
type SnapshotInfo struct {
	ID           string    `json:"id"`
	Tag          string    `json:"tag"`
	SnapshotDate time.Time `json:"snapshot_date"`
	CapturedAt   time.Time `json:"captured_at"`
	GrandTotal   float64   `json:"grand_total"`
}

// ReportSnapshot é um snapshot bruto de relatório financeiro (QuickBooks)
type ReportSnapshot struct {
	ID         int64     `json:"id"`
	ReportType string    `json:"report_type"`
	AsOf       time.Time `json:"as_of"`
	Data       []byte    `json:"data"`
}

// CopilotResponse é a resposta do copiloto de perguntas em linguagem natural
type CopilotResponse struct {
	Answer  string   `json:"answer"`
	Sources []string `json:"sources,omitempty"`
}
