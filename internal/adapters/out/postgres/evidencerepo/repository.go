package evidencerepo

import (
	"context"

	"jewelflow/internal/core/domain/model/kernel"
	"jewelflow/internal/core/domain/model/order"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormEvidenceRepository implements EvidenceRepository using GORM.
type GormEvidenceRepository struct {
	db *gorm.DB
}

// NewGormEvidenceRepository creates a new GORM evidence repository.
func NewGormEvidenceRepository(db *gorm.DB) *GormEvidenceRepository {
	return &GormEvidenceRepository{db: db}
}

// Add persists an evidence record. An existing record for the same
// (order, stage) pair is replaced, tolerating completion retries.
func (r *GormEvidenceRepository) Add(ctx context.Context, evidence *order.Evidence) error {
	dto := fromDomain(evidence)
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "order_id"}, {Name: "stage"}},
			UpdateAll: true,
		}).
		Create(&dto).Error
}

// GetForOrder retrieves all evidence recorded for an order, in stage order.
func (r *GormEvidenceRepository) GetForOrder(ctx context.Context, orderID kernel.UUID) ([]*order.Evidence, error) {
	if err := orderID.Validate(); err != nil {
		return nil, err
	}

	var dtos []EvidenceDTO
	if err := r.db.WithContext(ctx).
		Where("order_id = ?", orderID.Bytes()).
		Order("stage").
		Find(&dtos).Error; err != nil {
		return nil, err
	}

	evidences := make([]*order.Evidence, 0, len(dtos))
	for _, dto := range dtos {
		e, err := toDomain(dto)
		if err != nil {
			return nil, err
		}
		evidences = append(evidences, e)
	}
	return evidences, nil
}

// Exists reports whether evidence has been recorded for the (order, stage) pair.
func (r *GormEvidenceRepository) Exists(ctx context.Context, orderID kernel.UUID, stage order.Stage) (bool, error) {
	if err := orderID.Validate(); err != nil {
		return false, err
	}

	var count int64
	if err := r.db.WithContext(ctx).
		Model(&EvidenceDTO{}).
		Where("order_id = ? AND stage = ?", orderID.Bytes(), int(stage)).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// DeleteForStages removes the evidence records for the given stages of an
// order. Used by the QC rollback to clear the failed check and the rework
// stage.
func (r *GormEvidenceRepository) DeleteForStages(ctx context.Context, orderID kernel.UUID, stages []order.Stage) error {
	if err := orderID.Validate(); err != nil {
		return err
	}
	if len(stages) == 0 {
		return nil
	}

	stageInts := make([]int, 0, len(stages))
	for _, s := range stages {
		stageInts = append(stageInts, int(s))
	}

	return r.db.WithContext(ctx).
		Where("order_id = ? AND stage IN ?", orderID.Bytes(), stageInts).
		Delete(&EvidenceDTO{}).Error
}
