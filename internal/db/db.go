package db

import (
	"time"

	"github.com/sirupsen/logrus"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/BruksfildServices01/habitta/internal/config"
	"github.com/BruksfildServices01/habitta/internal/models"
)

// Tipos de estabelecimento existentes desde o primeiro deploy.
var DefaultEstablishmentTypes = []string{"comercial", "residencial"}

func NewDB(cfg *config.Config) *gorm.DB {
	db, err := gorm.Open(postgres.Open(cfg.DBUrl), &gorm.Config{
		PrepareStmt: true,
	})
	if err != nil {
		logrus.WithError(err).Fatal("failed to connect database")
	}

	sqlDB, err := db.DB()
	if err != nil {
		logrus.WithError(err).Fatal("failed to get sql.DB")
	}

	sqlDB.SetMaxOpenConns(10)
	sqlDB.SetMaxIdleConns(5)
	sqlDB.SetConnMaxLifetime(30 * time.Minute)
	sqlDB.SetConnMaxIdleTime(10 * time.Minute)

	if err := Migrate(db); err != nil {
		logrus.WithError(err).Fatal("failed to migrate")
	}

	return db
}

func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(
		&models.User{},
		&models.Client{},
		&models.EstablishmentType{},
		&models.Establishment{},
		&models.Recommendation{},
		&models.RecommendationEstablishment{},
		&models.PasswordResetToken{},
		&models.AuditLog{},
	); err != nil {
		return err
	}

	// no máximo uma recomendação em seleção por cliente
	if err := db.Exec(`
        CREATE UNIQUE INDEX IF NOT EXISTS ux_recomendacoes_uma_selecao
        ON recomendacoes (cliente_id)
        WHERE status = 'selecionar'
    `).Error; err != nil {
		return err
	}

	return SeedEstablishmentTypes(db)
}

func SeedEstablishmentTypes(db *gorm.DB) error {
	types := make([]models.EstablishmentType, 0, len(DefaultEstablishmentTypes))
	for _, name := range DefaultEstablishmentTypes {
		types = append(types, models.EstablishmentType{Name: name})
	}

	return db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "nome"}},
		DoNothing: true,
	}).Create(&types).Error
}
