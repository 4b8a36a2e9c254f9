package catalog

import "recycle-rewards/internal/model"

// Waste type IDs.
const (
	WastePlastic    = "w1"
	WastePaper      = "w2"
	WasteGlass      = "w3"
	WasteMetal      = "w4"
	WasteOrganic    = "w5"
	WasteElectronic = "w6"
)

// wasteTypes contains all scannable waste categories and their reward rates.
var wasteTypes = map[string]model.WasteType{
	WastePlastic: {
		ID:            WastePlastic,
		Name:          "Plastique",
		Description:   "Déchets en plastique comme les bouteilles, sacs, emballages",
		RecyclingInfo: "Recyclable dans les bacs jaunes",
		PointsPerKg:   20,
	},
	WastePaper: {
		ID:            WastePaper,
		Name:          "Papier/Carton",
		Description:   "Papiers, journaux, cartons, emballages papier",
		RecyclingInfo: "Recyclable dans les bacs bleus",
		PointsPerKg:   15,
	},
	WasteGlass: {
		ID:            WasteGlass,
		Name:          "Verre",
		Description:   "Bouteilles en verre, pots, bocaux",
		RecyclingInfo: "Recyclable dans les conteneurs verts",
		PointsPerKg:   10,
	},
	WasteMetal: {
		ID:            WasteMetal,
		Name:          "Métal",
		Description:   "Canettes, boîtes de conserve, aluminium",
		RecyclingInfo: "Recyclable dans les bacs jaunes",
		PointsPerKg:   25,
	},
	WasteOrganic: {
		ID:            WasteOrganic,
		Name:          "Organique",
		Description:   "Déchets alimentaires, végétaux",
		RecyclingInfo: "Compostable dans les bacs marrons",
		PointsPerKg:   5,
	},
	WasteElectronic: {
		ID:            WasteElectronic,
		Name:          "Électronique",
		Description:   "Appareils électriques, piles, batteries",
		RecyclingInfo: "À déposer en déchetterie ou points de collecte spécifiques",
		PointsPerKg:   30,
	},
}

// wasteOrder defines the display order for WasteTypes.
var wasteOrder = []string{
	WastePlastic, WastePaper, WasteGlass, WasteMetal, WasteOrganic, WasteElectronic,
}

// WasteTypes returns all waste categories in display order.
func WasteTypes() []model.WasteType {
	types := make([]model.WasteType, 0, len(wasteOrder))
	for _, id := range wasteOrder {
		if w, ok := wasteTypes[id]; ok {
			types = append(types, w)
		}
	}
	return types
}

// WasteType returns the waste category for a given ID.
func WasteType(id string) (model.WasteType, bool) {
	w, ok := wasteTypes[id]
	return w, ok
}
