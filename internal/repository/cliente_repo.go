package repository

import (
	"context"

	"github.com/Acedi-a/app-ferreteria-pos-sub001/internal/model"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type ClienteRepository interface {
	Create(ctx context.Context, c *model.Cliente) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.Cliente, error)
	FindByIDTx(tx *gorm.DB, id uuid.UUID) (*model.Cliente, error)
	Update(ctx context.Context, c *model.Cliente) error
	List(ctx context.Context, incluirInactivos bool) ([]model.Cliente, error)
	// AjustarSaldoPendienteTx applies a signed delta to the denormalized
	// saldo_pendiente. This and AjustarTotalComprasTx are the ONLY writers of
	// those columns.
	AjustarSaldoPendienteTx(tx *gorm.DB, id uuid.UUID, delta decimal.Decimal) error
	AjustarTotalComprasTx(tx *gorm.DB, id uuid.UUID, delta decimal.Decimal) error
}

type clienteRepo struct{ db *gorm.DB }

func NewClienteRepository(db *gorm.DB) ClienteRepository { return &clienteRepo{db: db} }

func (r *clienteRepo) Create(ctx context.Context, c *model.Cliente) error {
	return r.db.WithContext(ctx).Create(c).Error
}

func (r *clienteRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.Cliente, error) {
	var c model.Cliente
	err := r.db.WithContext(ctx).First(&c, "id = ?", id).Error
	return &c, err
}

func (r *clienteRepo) FindByIDTx(tx *gorm.DB, id uuid.UUID) (*model.Cliente, error) {
	var c model.Cliente
	err := tx.First(&c, "id = ?", id).Error
	return &c, err
}

func (r *clienteRepo) Update(ctx context.Context, c *model.Cliente) error {
	return r.db.WithContext(ctx).Save(c).Error
}

func (r *clienteRepo) List(ctx context.Context, incluirInactivos bool) ([]model.Cliente, error) {
	q := r.db.WithContext(ctx).Order("nombre ASC")
	if !incluirInactivos {
		q = q.Where("activo = true")
	}
	var clientes []model.Cliente
	err := q.Find(&clientes).Error
	return clientes, err
}

func (r *clienteRepo) AjustarSaldoPendienteTx(tx *gorm.DB, id uuid.UUID, delta decimal.Decimal) error {
	return tx.Model(&model.Cliente{}).Where("id = ?", id).
		Update("saldo_pendiente", gorm.Expr("saldo_pendiente + ?", delta)).Error
}

func (r *clienteRepo) AjustarTotalComprasTx(tx *gorm.DB, id uuid.UUID, delta decimal.Decimal) error {
	return tx.Model(&model.Cliente{}).Where("id = ?", id).
		Update("total_compras", gorm.Expr("total_compras + ?", delta)).Error
}
