package repository

import (
	"context"
	"time"

	"github.com/Acedi-a/app-ferreteria-pos-sub001/internal/dto"
	"github.com/Acedi-a/app-ferreteria-pos-sub001/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type CuentaRepository interface {
	CreateTx(tx *gorm.DB, c *model.CuentaPorCobrar) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.CuentaPorCobrar, error)
	FindByIDTx(tx *gorm.DB, id uuid.UUID) (*model.CuentaPorCobrar, error)
	UpdateTx(tx *gorm.DB, c *model.CuentaPorCobrar) error
	CreatePagoTx(tx *gorm.DB, p *model.PagoCuenta) error
	// MarcarVencidas bulk-transitions pendiente accounts past their due date to
	// vencida and reports how many rows changed. Running it twice is a no-op
	// the second time.
	MarcarVencidas(ctx context.Context, hoy time.Time) (int64, error)
	List(ctx context.Context, filter dto.CuentaFilter) ([]model.CuentaPorCobrar, int64, error)
	DB() *gorm.DB
}

type cuentaRepo struct{ db *gorm.DB }

func NewCuentaRepository(db *gorm.DB) CuentaRepository { return &cuentaRepo{db: db} }

func (r *cuentaRepo) DB() *gorm.DB { return r.db }

func (r *cuentaRepo) CreateTx(tx *gorm.DB, c *model.CuentaPorCobrar) error {
	return tx.Create(c).Error
}

func (r *cuentaRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.CuentaPorCobrar, error) {
	var c model.CuentaPorCobrar
	err := r.db.WithContext(ctx).Preload("Pagos").First(&c, "id = ?", id).Error
	return &c, err
}

func (r *cuentaRepo) FindByIDTx(tx *gorm.DB, id uuid.UUID) (*model.CuentaPorCobrar, error) {
	var c model.CuentaPorCobrar
	err := tx.Preload("Pagos").First(&c, "id = ?", id).Error
	return &c, err
}

func (r *cuentaRepo) UpdateTx(tx *gorm.DB, c *model.CuentaPorCobrar) error {
	return tx.Save(c).Error
}

func (r *cuentaRepo) CreatePagoTx(tx *gorm.DB, p *model.PagoCuenta) error {
	return tx.Create(p).Error
}

func (r *cuentaRepo) MarcarVencidas(ctx context.Context, hoy time.Time) (int64, error) {
	res := r.db.WithContext(ctx).Model(&model.CuentaPorCobrar{}).
		Where("estado = ? AND fecha_vencimiento IS NOT NULL AND fecha_vencimiento < ?", model.CuentaPendiente, hoy).
		Update("estado", model.CuentaVencida)
	return res.RowsAffected, res.Error
}

func (r *cuentaRepo) List(ctx context.Context, filter dto.CuentaFilter) ([]model.CuentaPorCobrar, int64, error) {
	q := r.db.WithContext(ctx).Model(&model.CuentaPorCobrar{})
	if filter.ClienteID != "" {
		q = q.Where("cliente_id = ?", filter.ClienteID)
	}
	if filter.Estado != "" {
		q = q.Where("estado = ?", filter.Estado)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	page, limit := filter.Page, filter.Limit
	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > 200 {
		limit = 50
	}

	var cuentas []model.CuentaPorCobrar
	err := q.Preload("Pagos").
		Order("fecha_creacion DESC").
		Offset((page - 1) * limit).Limit(limit).
		Find(&cuentas).Error
	return cuentas, total, err
}
