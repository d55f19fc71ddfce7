package repository

import (
	"context"
	"errors"

	"github.com/Acedi-a/app-ferreteria-pos-sub001/internal/model"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type CajaRepository interface {
	CreateCaja(ctx context.Context, c *model.Caja) error
	// FindAbierta returns (nil, nil) when no till is open.
	FindAbierta(ctx context.Context) (*model.Caja, error)
	FindByID(ctx context.Context, id uuid.UUID) (*model.Caja, error)
	UpdateCajaTx(tx *gorm.DB, c *model.Caja) error
	CreateMovimiento(ctx context.Context, m *model.MovimientoCaja) error
	CreateMovimientoTx(tx *gorm.DB, m *model.MovimientoCaja) error
	ListMovimientos(ctx context.Context, cajaID uuid.UUID) ([]model.MovimientoCaja, error)
	// SumMovimientos aggregates the session's ledger: Σingresos and Σegresos.
	SumMovimientos(ctx context.Context, cajaID uuid.UUID) (ingresos, egresos decimal.Decimal, err error)
	DB() *gorm.DB // exposes the DB for transaction creation in the service layer
}

type cajaRepo struct{ db *gorm.DB }

func NewCajaRepository(db *gorm.DB) CajaRepository { return &cajaRepo{db: db} }

func (r *cajaRepo) DB() *gorm.DB { return r.db }

func (r *cajaRepo) CreateCaja(ctx context.Context, c *model.Caja) error {
	return r.db.WithContext(ctx).Create(c).Error
}

func (r *cajaRepo) FindAbierta(ctx context.Context) (*model.Caja, error) {
	var c model.Caja
	err := r.db.WithContext(ctx).Where("estado = ?", model.CajaAbierta).First(&c).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *cajaRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.Caja, error) {
	var c model.Caja
	err := r.db.WithContext(ctx).First(&c, "id = ?", id).Error
	return &c, err
}

func (r *cajaRepo) UpdateCajaTx(tx *gorm.DB, c *model.Caja) error {
	return tx.Save(c).Error
}

func (r *cajaRepo) CreateMovimiento(ctx context.Context, m *model.MovimientoCaja) error {
	return r.db.WithContext(ctx).Create(m).Error
}

func (r *cajaRepo) CreateMovimientoTx(tx *gorm.DB, m *model.MovimientoCaja) error {
	return tx.Create(m).Error
}

func (r *cajaRepo) ListMovimientos(ctx context.Context, cajaID uuid.UUID) ([]model.MovimientoCaja, error) {
	var movs []model.MovimientoCaja
	err := r.db.WithContext(ctx).Where("caja_id = ?", cajaID).Order("fecha ASC").Find(&movs).Error
	return movs, err
}

func (r *cajaRepo) SumMovimientos(ctx context.Context, cajaID uuid.UUID) (decimal.Decimal, decimal.Decimal, error) {
	type fila struct {
		Tipo  string
		Total decimal.Decimal
	}
	var filas []fila
	err := r.db.WithContext(ctx).Model(&model.MovimientoCaja{}).
		Select("tipo, COALESCE(SUM(monto), 0) AS total").
		Where("caja_id = ?", cajaID).
		Group("tipo").
		Scan(&filas).Error
	if err != nil {
		return decimal.Zero, decimal.Zero, err
	}
	ingresos, egresos := decimal.Zero, decimal.Zero
	for _, f := range filas {
		switch f.Tipo {
		case model.MovimientoIngreso:
			ingresos = f.Total
		case model.MovimientoEgreso:
			egresos = f.Total
		}
	}
	return ingresos, egresos, nil
}
