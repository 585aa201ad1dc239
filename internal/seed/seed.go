package seed

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	agencydomain "github.com/abdouni493/auto-rental-application/internal/agency/domain"
	templatedomain "github.com/abdouni493/auto-rental-application/internal/template/domain"
)

const (
	defaultAgencyID   = "agc-main"
	defaultAgencyName = "DriveFlow Management"
)

// EnsureDefaults seeds the main agency and the stock document templates
// on first startup. Existing rows are left alone so operator edits to the
// stock templates survive restarts.
func EnsureDefaults(db *gorm.DB) error {
	if db == nil {
		return errors.New("seed database handle is required")
	}

	ctx := context.Background()
	return db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := ensureAgency(ctx, tx); err != nil {
			return err
		}
		for _, tpl := range stockTemplates() {
			if err := ensureTemplate(ctx, tx, tpl); err != nil {
				return err
			}
		}
		return nil
	})
}

func ensureAgency(ctx context.Context, tx *gorm.DB) error {
	var existing agencydomain.Agency
	err := tx.WithContext(ctx).First(&existing, "id = ?", defaultAgencyID).Error
	if err == nil {
		return nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}

	now := time.Now().UTC()
	return tx.WithContext(ctx).Create(&agencydomain.Agency{
		ID:        defaultAgencyID,
		Name:      defaultAgencyName,
		Wilaya:    "Alger",
		Address:   "Alger Centre",
		Phone:     "021 55 66 77",
		CreatedAt: now,
		UpdatedAt: now,
	}).Error
}

func ensureTemplate(ctx context.Context, tx *gorm.DB, tpl templatedomain.Template) error {
	var existing templatedomain.Template
	err := tx.WithContext(ctx).First(&existing, "id = ?", tpl.ID).Error
	if err == nil {
		return nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}

	now := time.Now().UTC()
	tpl.CreatedAt = now
	tpl.UpdatedAt = now
	return tx.WithContext(ctx).Create(&tpl).Error
}

// stockTemplates returns the two designs shipped with the product: a
// professional invoice and the premium rental contract.
func stockTemplates() []templatedomain.Template {
	return []templatedomain.Template{
		{
			ID:           "tpl-inv-1",
			Name:         "Facture Professionnelle",
			Category:     templatedomain.CategoryInvoice,
			CanvasWidth:  templatedomain.DefaultCanvasWidth,
			CanvasHeight: templatedomain.DefaultCanvasHeight,
			Elements: templatedomain.ElementList{
				{
					ID: "e1", Type: templatedomain.ElementLogo, Label: "Logo", Content: "DRIVEFLOW",
					X: 40, Y: 40, Width: 160, Height: 70,
					FontSize: 18, FontWeight: "900", Color: "#2563eb", TextAlign: templatedomain.AlignCenter,
					BackgroundColor: "#eff6ff", BorderWidth: 2, BorderColor: "#bfdbfe", BorderRadius: 20,
				},
				{
					ID: "e2", Type: templatedomain.ElementVariable, Label: "Info Agence",
					Content: "DriveFlow Management\nAlger Centre\n021 55 66 77",
					X:       40, Y: 120, Width: 250, Height: 60,
					FontSize: 9, Color: "#64748b", LineHeight: 1.6,
				},
				{
					ID: "e3", Type: templatedomain.ElementStatic, Label: "Label", Content: "FACTURE",
					X: 350, Y: 40, Width: 200,
					FontSize: 32, FontWeight: "900", TextAlign: templatedomain.AlignRight,
					Color: "#1e293b", LetterSpacing: -1,
				},
				{
					ID: "e4", Type: templatedomain.ElementVariable, Label: "Numéro",
					Content: "N°: {{res_number}}\nDate: {{current_date}}",
					X:       350, Y: 90, Width: 200,
					TextAlign: templatedomain.AlignRight, FontSize: 10, FontWeight: "700",
				},
				{
					ID: "e5", Type: templatedomain.ElementVariable, Label: "Client",
					Content: "CLIENT:\n{{client_name}}\n{{client_phone}}",
					X:       40, Y: 220, Width: 280,
					Padding: 20, BackgroundColor: "#f8fafc", BorderRadius: 24,
					FontWeight: "700", BorderWidth: 1, BorderColor: "#f1f5f9",
				},
				{
					ID: "e6", Type: templatedomain.ElementTable, Label: "Détails",
					X: 40, Y: 360, Width: 515, Height: 280,
				},
				{
					ID: "e7", Type: templatedomain.ElementVariable, Label: "Paiements",
					Content: "TOTAL HT: {{total_amount}} DZ\nTOTAL TTC: {{total_amount}} DZ",
					X:       350, Y: 660, Width: 200,
					TextAlign: templatedomain.AlignRight, FontWeight: "900",
					Color: "#1e293b", FontSize: 11, LineHeight: 1.8,
				},
				{
					ID: "e8", Type: templatedomain.ElementQRCode, Label: "QR Sync", Content: "VALID-DOCUMENT",
					X: 40, Y: 720, Width: 80, Height: 80,
					BackgroundColor: "#f1f5f9", BorderRadius: 10,
					TextAlign: templatedomain.AlignCenter, FontSize: 8,
				},
			},
		},
		{
			ID:           "tpl-cont-1",
			Name:         "Contrat Premium Gold",
			Category:     templatedomain.CategoryContract,
			CanvasWidth:  templatedomain.DefaultCanvasWidth,
			CanvasHeight: templatedomain.DefaultCanvasHeight,
			Elements: templatedomain.ElementList{
				{
					ID: "c1", Type: templatedomain.ElementStatic, Label: "Titre",
					Content: "CONTRAT DE LOCATION VÉHICULE",
					X:       40, Y: 40, Width: 515,
					FontSize: 24, FontWeight: "900", TextAlign: templatedomain.AlignCenter,
					Color: "#1e293b", BackgroundColor: "#f8fafc", Padding: 15, BorderRadius: 15,
				},
				{
					ID: "c2", Type: templatedomain.ElementVariable, Label: "Agence", Content: "DriveFlow Agency",
					X: 40, Y: 110, Width: 250, FontSize: 10, FontWeight: "700",
				},
				{
					ID: "c3", Type: templatedomain.ElementVariable, Label: "Num Contrat",
					Content: "Contrat N°: {{res_number}}",
					X:       300, Y: 110, Width: 250,
					TextAlign: templatedomain.AlignRight, FontSize: 10, FontWeight: "700",
				},
				{
					ID: "c4", Type: templatedomain.ElementVariable, Label: "Locataire",
					Content: "LE LOCATAIRE:\n{{client_name}}\nTél: {{client_phone}}",
					X:       40, Y: 160, Width: 250, FontSize: 9, LineHeight: 1.5,
				},
				{
					ID: "c5", Type: templatedomain.ElementVariable, Label: "Vehicule",
					Content: "LE VÉHICULE:\n{{vehicle_name}}\n{{vehicle_plate}}",
					X:       300, Y: 160, Width: 250, FontSize: 9, LineHeight: 1.5,
				},
				{
					ID: "c6", Type: templatedomain.ElementFuelMileage, Label: "Etat Compteur",
					X: 40, Y: 300, Width: 515, Height: 70,
					BackgroundColor: "#f8fafc", BorderRadius: 15,
				},
				{
					ID: "c7", Type: templatedomain.ElementChecklist, Label: "Inventaire",
					Content: templatedomain.ChecklistSecurity,
					X:       40, Y: 390, Width: 515, Height: 250,
				},
				{
					ID: "c8", Type: templatedomain.ElementSignatureArea, Label: "Signature Client",
					Content: "VISA CLIENT",
					X:       315, Y: 680, Width: 240, Height: 120,
					BorderWidth: 1, BorderColor: "#e2e8f0", BorderRadius: 20,
				},
			},
		},
	}
}
