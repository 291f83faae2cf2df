package classifying

import (
	"github.com/dazos/cfo-copilot-api/internal/domain"
	"github.com/sirupsen/logrus"
)

// Classifier decide a categoria de receita de cada oportunidade.
// As regras são aplicadas em ordem; a primeira que casar vence.
type Classifier struct{}

func New() *Classifier {
	return &Classifier{}
}

// Classify retorna a categoria única da oportunidade.
//
// Regras, em ordem:
//  1. Renewal + estágio aberto          -> arr_eligible_open
//  2. Renewal + closed won              -> arr_eligible_closed_won
//  3. New Business/Expansion + aberto   -> pipeline
//  4. New Business/Expansion + won      -> bookings_closed_won
//  5. closed lost                       -> bookings_closed_lost
//  6. resto                             -> excluded (sempre logado)
func (c *Classifier) Classify(opp *domain.Opportunity) domain.Category {
	stage := opp.Stage()
	recordType := opp.RecordType()

	if recordType == domain.RecordTypeUnknown {
		// Oportunidade sem record type fica fora das agregações, mas a
		// sincronização segue; o log marca o registro para revisão manual.
		logrus.WithFields(logrus.Fields{
			"opportunity_sf_id": opp.ExternalID,
			"opportunity_name":  opp.Name,
			"record_type_raw":   opp.RecordTypeRaw,
		}).Warn("classificação: oportunidade sem record type reconhecido, marcada como excluída")
	}

	switch {
	case recordType == domain.RecordTypeRenewal && isOpen(stage):
		return domain.CategoryARREligibleOpen
	case recordType == domain.RecordTypeRenewal && stage == domain.StageClosedWon:
		return domain.CategoryARREligibleClosedWon
	case isGrowth(recordType) && isOpen(stage):
		return domain.CategoryPipeline
	case isGrowth(recordType) && stage == domain.StageClosedWon:
		return domain.CategoryBookingsClosedWon
	case stage == domain.StageClosedLost:
		return domain.CategoryBookingsClosedLost
	default:
		if recordType != domain.RecordTypeUnknown {
			logrus.WithFields(logrus.Fields{
				"opportunity_sf_id": opp.ExternalID,
				"stage_name":        opp.StageRaw,
				"record_type_name":  opp.RecordTypeRaw,
			}).Warn("classificação: combinação não mapeada, marcada como excluída")
		}
		return domain.CategoryExcluded
	}
}

// Estágios desconhecidos ou customizados contam como abertos; só "Closed Won"
// e "Closed Lost" encerram uma oportunidade.
func isOpen(stage domain.StageKind) bool {
	return stage != domain.StageClosedWon && stage != domain.StageClosedLost
}

func isGrowth(recordType domain.RecordTypeKind) bool {
	return recordType == domain.RecordTypeNewBusiness || recordType == domain.RecordTypeExpansion
}
