package repository

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"festivales/internal/model"
)

// UsuarioRepository defines user persistence operations. Soft deleted users
// are invisible to every finder.
type UsuarioRepository interface {
	Create(ctx context.Context, usuario *model.Usuario) error
	Update(ctx context.Context, usuario *model.Usuario) error
	FindByID(ctx context.Context, id string) (*model.Usuario, error)
	FindByEmail(ctx context.Context, email string) (*model.Usuario, error)
	FindByDNI(ctx context.Context, dni string) (*model.Usuario, error)
	List(ctx context.Context) ([]model.Usuario, error)
	SoftDelete(ctx context.Context, id string) (bool, error)
}

type usuarioRepository struct {
	db *gorm.DB
}

// NewUsuarioRepository builds a GORM-backed repository.
func NewUsuarioRepository(db *gorm.DB) UsuarioRepository {
	return &usuarioRepository{db: db}
}

func (r *usuarioRepository) Create(ctx context.Context, usuario *model.Usuario) error {
	return r.db.WithContext(ctx).Omit(clause.Associations).Create(usuario).Error
}

func (r *usuarioRepository) Update(ctx context.Context, usuario *model.Usuario) error {
	return r.db.WithContext(ctx).Omit(clause.Associations).Save(usuario).Error
}

func (r *usuarioRepository) FindByID(ctx context.Context, id string) (*model.Usuario, error) {
	return r.first(ctx, "id = ?", id)
}

func (r *usuarioRepository) FindByEmail(ctx context.Context, email string) (*model.Usuario, error) {
	return r.first(ctx, "email = ?", email)
}

func (r *usuarioRepository) FindByDNI(ctx context.Context, dni string) (*model.Usuario, error) {
	return r.first(ctx, "dni = ?", dni)
}

func (r *usuarioRepository) first(ctx context.Context, query string, args ...interface{}) (*model.Usuario, error) {
	var usuario model.Usuario
	if err := r.db.WithContext(ctx).Preload("Rol").Where(query, args...).First(&usuario).Error; err != nil {
		return nil, err
	}
	return &usuario, nil
}

func (r *usuarioRepository) List(ctx context.Context) ([]model.Usuario, error) {
	var usuarios []model.Usuario
	if err := r.db.WithContext(ctx).Preload("Rol").Order("created_at DESC").Find(&usuarios).Error; err != nil {
		return nil, err
	}
	return usuarios, nil
}

// SoftDelete flips the user to inactivo and stamps deleted_at.
func (r *usuarioRepository) SoftDelete(ctx context.Context, id string) (bool, error) {
	var deleted bool
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Model(&model.Usuario{}).Where("id = ?", id).Update("estado", model.EstadoInactivo)
		if res.Error != nil || res.RowsAffected == 0 {
			return res.Error
		}
		res = tx.Where("id = ?", id).Delete(&model.Usuario{})
		deleted = res.RowsAffected > 0
		return res.Error
	})
	return deleted, err
}

// RolRepository defines role persistence operations.
type RolRepository interface {
	Create(ctx context.Context, rol *model.Rol) error
	Update(ctx context.Context, rol *model.Rol) error
	FindByID(ctx context.Context, id string) (*model.Rol, error)
	FindByNombre(ctx context.Context, nombre string) (*model.Rol, error)
	List(ctx context.Context) ([]model.Rol, error)
	Delete(ctx context.Context, id string) (bool, error)
}

type rolRepository struct {
	db *gorm.DB
}

// NewRolRepository builds a GORM-backed repository.
func NewRolRepository(db *gorm.DB) RolRepository {
	return &rolRepository{db: db}
}

func (r *rolRepository) Create(ctx context.Context, rol *model.Rol) error {
	return r.db.WithContext(ctx).Create(rol).Error
}

func (r *rolRepository) Update(ctx context.Context, rol *model.Rol) error {
	return r.db.WithContext(ctx).Save(rol).Error
}

func (r *rolRepository) FindByID(ctx context.Context, id string) (*model.Rol, error) {
	var rol model.Rol
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&rol).Error; err != nil {
		return nil, err
	}
	return &rol, nil
}

func (r *rolRepository) FindByNombre(ctx context.Context, nombre string) (*model.Rol, error) {
	var rol model.Rol
	if err := r.db.WithContext(ctx).Where("nombre = ?", nombre).First(&rol).Error; err != nil {
		return nil, err
	}
	return &rol, nil
}

func (r *rolRepository) List(ctx context.Context) ([]model.Rol, error) {
	var roles []model.Rol
	if err := r.db.WithContext(ctx).Order("nombre ASC").Find(&roles).Error; err != nil {
		return nil, err
	}
	return roles, nil
}

func (r *rolRepository) Delete(ctx context.Context, id string) (bool, error) {
	res := r.db.WithContext(ctx).Where("id = ?", id).Delete(&model.Rol{})
	return res.RowsAffected > 0, res.Error
}
