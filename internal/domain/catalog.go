package domain

// BeanType identifies a coffee variety offered by the shop configurator.
type BeanType string

const (
	BeanArabica BeanType = "arabica"
	BeanRobusta BeanType = "robusta"
)

// Stage identifies the post-harvest processing stage a buyer can request.
type Stage string

const (
	StageBerry     Stage = "berry"
	StageParchment Stage = "parchment"
	StageGreen     Stage = "green"
	StageRoasted   Stage = "roasted"
	StageGround    Stage = "ground"
)

// Origin identifies the growing region a buyer can select.
type Origin string

const (
	OriginMizoram   Origin = "mizoram"
	OriginManipur   Origin = "manipur"
	OriginSikkim    Origin = "sikkim"
	OriginMeghalaya Origin = "meghalaya"
)

// CatalogEntry describes one selectable option: its display name, a short
// description, and an optional starting-price label shown in the shop.
type CatalogEntry struct {
	Name        string
	Description string
	Price       string
}

// The catalogs are closed sets fixed at build time. Order matters: it is the
// order options are presented in, and the order API enums are generated in.
var (
	BeanTypes = []BeanType{BeanArabica, BeanRobusta}
	Stages    = []Stage{StageBerry, StageParchment, StageGreen, StageRoasted, StageGround}
	Origins   = []Origin{OriginMizoram, OriginManipur, OriginSikkim, OriginMeghalaya}
)

var beanCatalog = map[BeanType]CatalogEntry{
	BeanArabica: {Name: "Arabica", Description: "Smooth, aromatic, grown in cooler highlands"},
	BeanRobusta: {Name: "Robusta", Description: "Stronger body, higher caffeine, grown in valleys"},
}

var stageCatalog = map[Stage]CatalogEntry{
	StageBerry:     {Name: "Coffee Berry", Description: "Raw coffee cherries, fresh from harvest", Price: "Starting from ₹200/kg"},
	StageParchment: {Name: "Parchment Coffee", Description: "Dried coffee beans in parchment layer", Price: "Starting from ₹400/kg"},
	StageGreen:     {Name: "Green Coffee Beans", Description: "Bulk processing for factories & industries", Price: "Starting from ₹600/kg"},
	StageRoasted:   {Name: "Roasted Beans", Description: "Ready-to-brew roasted coffee beans", Price: "Starting from ₹800/kg"},
	StageGround:    {Name: "Ground Coffee", Description: "Fine / Medium / Coarse grind options", Price: "Starting from ₹900/kg"},
}

var originCatalog = map[Origin]CatalogEntry{
	OriginMizoram:   {Name: "Mizoram Coffee", Description: "Grown in misty highlands, balanced aroma"},
	OriginManipur:   {Name: "Manipur Coffee", Description: "Earthy tones, smooth finish"},
	OriginSikkim:    {Name: "Sikkim Coffee", Description: "Cool-climate beans, delicate acidity"},
	OriginMeghalaya: {Name: "Meghalaya Coffee", Description: "Bold body, rustic flavor"},
}

// Name returns the display name for the bean type, or "" if the id is not in
// the catalog. Unknown ids are tolerated rather than rejected, matching the
// permissive lookup behavior of the site.
func (b BeanType) Name() string { return beanCatalog[b].Name }

// Entry returns the full catalog entry and whether the id is known.
func (b BeanType) Entry() (CatalogEntry, bool) {
	e, ok := beanCatalog[b]
	return e, ok
}

// Known reports whether the id is in the fixed catalog.
func (b BeanType) Known() bool {
	_, ok := beanCatalog[b]
	return ok
}

// Name returns the display label for the processing stage, or "" if unknown.
func (s Stage) Name() string { return stageCatalog[s].Name }

func (s Stage) Entry() (CatalogEntry, bool) {
	e, ok := stageCatalog[s]
	return e, ok
}

func (s Stage) Known() bool {
	_, ok := stageCatalog[s]
	return ok
}

// Name returns the display name for the origin, or "" if unknown.
func (o Origin) Name() string { return originCatalog[o].Name }

func (o Origin) Entry() (CatalogEntry, bool) {
	e, ok := originCatalog[o]
	return e, ok
}

func (o Origin) Known() bool {
	_, ok := originCatalog[o]
	return ok
}
