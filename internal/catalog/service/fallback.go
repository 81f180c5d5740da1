package service

import (
	"time"

	"github.com/google/uuid"

	"realty-portal-backend/internal/catalog/domain"
)

// fallbackCatalog is the bundled dataset served when the store is empty or
// unreachable, so the public site always renders listings. IDs are fixed so
// deep links stay stable across restarts.
var fallbackCatalog = []domain.Property{
	{
		ID:               uuid.MustParse("7f9c24e5-1f25-4a35-9c02-1a53b0a2d001"),
		Title:            "Casa moderna en Lomas del Este",
		Price:            185000,
		Location:         "Valencia, Carabobo",
		Type:             domain.TypeHouse,
		ListingType:      domain.ListingSale,
		Beds:             4,
		Baths:            3,
		Sqft:             3100,
		ImageURL:         "https://images.unsplash.com/photo-1600596542815-ffad4c1539a9?w=1200",
		Description:      "Amplia casa familiar de dos plantas con acabados modernos, cocina empotrada y patio con parrillera.",
		ShortDescription: "Casa de 4 habitaciones con patio y parrillera.",
		Features: domain.Features{
			General:  []string{"Estacionamiento para 2 vehículos", "Vigilancia 24h"},
			Interior: []string{"Cocina empotrada", "Aire acondicionado en habitaciones"},
			Exterior: []string{"Patio con parrillera", "Jardín"},
		},
		Featured:    true,
		IsPublished: true,
		Status:      domain.StatusAvailable,
	},
	{
		ID:               uuid.MustParse("7f9c24e5-1f25-4a35-9c02-1a53b0a2d002"),
		Title:            "Apartamento con vista al Ávila",
		Price:            96000,
		Location:         "Los Palos Grandes, Caracas",
		Type:             domain.TypeApartment,
		ListingType:      domain.ListingSale,
		Beds:             2,
		Baths:            2,
		Sqft:             1180,
		ImageURL:         "https://images.unsplash.com/photo-1512917774080-9991f1c4c750?w=1200",
		Description:      "Apartamento remodelado en piso alto con vista abierta al Ávila, a pasos del metro Altamira.",
		ShortDescription: "2 habitaciones, piso alto, vista al Ávila.",
		Features: domain.Features{
			General:  []string{"Un puesto de estacionamiento", "Planta eléctrica"},
			Interior: []string{"Piso de porcelanato", "Closets empotrados"},
			Exterior: []string{"Balcón"},
		},
		Featured:    true,
		IsPublished: true,
		Status:      domain.StatusAvailable,
	},
	{
		ID:               uuid.MustParse("7f9c24e5-1f25-4a35-9c02-1a53b0a2d003"),
		Title:            "Local comercial en avenida principal",
		Price:            1500,
		Location:         "Maracaibo, Zulia",
		Type:             domain.TypeCommercial,
		ListingType:      domain.ListingRent,
		Beds:             0,
		Baths:            1,
		Sqft:             860,
		ImageURL:         "https://images.unsplash.com/photo-1441986300917-64674bd600d8?w=1200",
		Description:      "Local a pie de calle con vitrina, santamaría y baño, ideal para comercio o servicios.",
		ShortDescription: "Local a pie de calle con vitrina.",
		Features: domain.Features{
			General:  []string{"Alto tráfico peatonal"},
			Interior: []string{"Baño", "Depósito"},
			Exterior: []string{"Vitrina a la calle", "Santamaría"},
		},
		IsPublished: true,
		Status:      domain.StatusAvailable,
	},
	{
		ID:               uuid.MustParse("7f9c24e5-1f25-4a35-9c02-1a53b0a2d004"),
		Title:            "Terreno urbanizado en San Diego",
		Price:            42000,
		Location:         "San Diego, Carabobo",
		Type:             domain.TypeLand,
		ListingType:      domain.ListingSale,
		Beds:             0,
		Baths:            0,
		Sqft:             5380,
		ImageURL:         "https://images.unsplash.com/photo-1500382017468-9049fed747ef?w=1200",
		Description:      "Parcela plana con servicios de agua y electricidad, documentación al día, lista para construir.",
		ShortDescription: "Parcela plana con servicios, lista para construir.",
		Features: domain.Features{
			General: []string{"Documentación al día", "Servicios instalados"},
		},
		IsPublished: true,
		Status:      domain.StatusAvailable,
	},
}

// FallbackCatalog returns a copy of the bundled dataset with creation dates
// pinned relative to now so newest-first ordering stays deterministic.
func FallbackCatalog() []domain.Property {
	now := time.Now()
	out := make([]domain.Property, len(fallbackCatalog))
	copy(out, fallbackCatalog)
	for i := range out {
		out[i].CreatedAt = now.Add(-time.Duration(i) * time.Hour)
		out[i].UpdatedAt = out[i].CreatedAt
	}
	return out
}
