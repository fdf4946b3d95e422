// internal/views/landing/models.go
package landing

// Feature is one highlight tile on the landing page.
type Feature struct {
	TitleKey       string
	DescriptionKey string
}

// Features lists the tiles in display order.
var Features = []Feature{
	{TitleKey: "home.features.smart", DescriptionKey: "home.features.smartDesc"},
	{TitleKey: "home.features.diverse", DescriptionKey: "home.features.diverseDesc"},
	{TitleKey: "home.features.support", DescriptionKey: "home.features.supportDesc"},
}

type View struct {
	Features []Feature
}
