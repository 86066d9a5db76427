package recommendation

import (
	"context"
	"time"

	"github.com/BruksfildServices01/habitta/internal/models"
)

type Repository interface {
	// -------- Client / Establishment --------
	GetClient(
		ctx context.Context,
		clientID uint,
	) (*models.Client, error)

	GetEstablishment(
		ctx context.Context,
		establishmentID uint,
	) (*models.Establishment, error)

	ListEstablishments(
		ctx context.Context,
	) ([]models.Establishment, error)

	ListMatchingEstablishments(
		ctx context.Context,
		client *models.Client,
	) ([]models.Establishment, error)

	// -------- Recommendation --------
	ListForClient(
		ctx context.Context,
		clientID uint,
	) ([]models.Recommendation, error)

	GetForClient(
		ctx context.Context,
		recommendationID uint,
		clientID uint,
	) (*models.Recommendation, error)

	GetByID(
		ctx context.Context,
		recommendationID uint,
	) (*models.Recommendation, error)

	Create(
		ctx context.Context,
		rec *models.Recommendation,
		establishmentIDs []uint,
	) error

	// GetOrCreateSelecting devolve a recomendação em seleção do cliente,
	// criando-a quando não existe. created indica se foi criada agora.
	GetOrCreateSelecting(
		ctx context.Context,
		clientID uint,
	) (rec *models.Recommendation, created bool, err error)

	FindSelecting(
		ctx context.Context,
		clientID uint,
	) (*models.Recommendation, error)

	UpdateNotes(
		ctx context.Context,
		rec *models.Recommendation,
	) error

	FinalizeSelecting(
		ctx context.Context,
		clientID uint,
		now time.Time,
	) (int64, error)

	Delete(
		ctx context.Context,
		recommendationID uint,
	) error

	// -------- Attachments --------
	Attach(
		ctx context.Context,
		recommendationID uint,
		establishmentID uint,
	) error

	Detach(
		ctx context.Context,
		recommendationID uint,
		establishmentID uint,
	) (bool, error)

	ListAttachedIDs(
		ctx context.Context,
		recommendationID uint,
	) ([]uint, error)

	ListAttached(
		ctx context.Context,
		recommendationID uint,
	) ([]models.Establishment, error)
}
