package repository

import (
	"context"
	"errors"

	"github.com/Acedi-a/app-ferreteria-pos-sub001/internal/dto"
	"github.com/Acedi-a/app-ferreteria-pos-sub001/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type MovimientoRepository interface {
	Create(ctx context.Context, m *model.Movimiento) error
	CreateTx(tx *gorm.DB, m *model.Movimiento) error
	// Ultimo returns the product's most recent movement, or (nil, nil) when the
	// ledger has no entries for it yet.
	Ultimo(ctx context.Context, productoID uuid.UUID) (*model.Movimiento, error)
	UltimoTx(tx *gorm.DB, productoID uuid.UUID) (*model.Movimiento, error)
	// Historial returns every movement for a product in insertion order, for
	// ledger replay.
	Historial(ctx context.Context, productoID uuid.UUID) ([]model.Movimiento, error)
	List(ctx context.Context, filter dto.MovimientoFilter) ([]model.Movimiento, int64, error)
	DB() *gorm.DB
}

type movimientoRepo struct{ db *gorm.DB }

func NewMovimientoRepository(db *gorm.DB) MovimientoRepository {
	return &movimientoRepo{db: db}
}

func (r *movimientoRepo) DB() *gorm.DB { return r.db }

func (r *movimientoRepo) Create(ctx context.Context, m *model.Movimiento) error {
	return r.db.WithContext(ctx).Create(m).Error
}

func (r *movimientoRepo) CreateTx(tx *gorm.DB, m *model.Movimiento) error {
	return tx.Create(m).Error
}

func (r *movimientoRepo) Ultimo(ctx context.Context, productoID uuid.UUID) (*model.Movimiento, error) {
	return ultimo(r.db.WithContext(ctx), productoID)
}

func (r *movimientoRepo) UltimoTx(tx *gorm.DB, productoID uuid.UUID) (*model.Movimiento, error) {
	return ultimo(tx, productoID)
}

func ultimo(db *gorm.DB, productoID uuid.UUID) (*model.Movimiento, error) {
	var m model.Movimiento
	err := db.Where("producto_id = ?", productoID).
		Order("secuencia DESC").
		First(&m).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &m, nil
}

func (r *movimientoRepo) Historial(ctx context.Context, productoID uuid.UUID) ([]model.Movimiento, error) {
	var movs []model.Movimiento
	err := r.db.WithContext(ctx).
		Where("producto_id = ?", productoID).
		Order("secuencia ASC").
		Find(&movs).Error
	return movs, err
}

func (r *movimientoRepo) List(ctx context.Context, filter dto.MovimientoFilter) ([]model.Movimiento, int64, error) {
	q := r.db.WithContext(ctx).Model(&model.Movimiento{}).Preload("Producto")
	if filter.ProductoID != "" {
		q = q.Where("producto_id = ?", filter.ProductoID)
	}
	if filter.Tipo != "" {
		q = q.Where("tipo = ?", filter.Tipo)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	page, limit := filter.Page, filter.Limit
	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > 500 {
		limit = 100
	}
	offset := (page - 1) * limit

	var movs []model.Movimiento
	err := q.Order("secuencia DESC").Offset(offset).Limit(limit).Find(&movs).Error
	return movs, total, err
}
