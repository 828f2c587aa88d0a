package core

const (
	CategoryHousing    Category = "moradia"
	CategoryFood       Category = "alimentacao"
	CategoryTransport  Category = "transporte"
	CategoryHealth     Category = "saude"
	CategoryLeisure    Category = "lazer"
	CategoryBills      Category = "contas"
	CategorySalary     Category = "salario"
	CategoryInvestment Category = "investimento"
	CategoryEducation  Category = "educacao"
	CategoryStreaming  Category = "streaming"
	CategoryCard       Category = "cartao"
	CategoryOther      Category = "outros"
)

// Category is the closed set of transaction categories. Adding one means
// adding a constant here plus a CategoryConfig row, both compile-checked
// by the exhaustiveness test.
type Category string

// CategoryConfig carries the presentation metadata for a category. The
// color and icon tokens are opaque to the engine.
type CategoryConfig struct {
	Label string
	Color string
	Icon  string
}

var categoryConfigs = map[Category]CategoryConfig{
	CategoryHousing:    {Label: "Moradia", Color: "hsl(268 56% 66%)", Icon: "home"},
	CategoryFood:       {Label: "Alimentação", Color: "hsl(38 92% 50%)", Icon: "utensils"},
	CategoryTransport:  {Label: "Transporte", Color: "hsl(217 91% 60%)", Icon: "car"},
	CategoryHealth:     {Label: "Saúde", Color: "hsl(0 84% 60%)", Icon: "heart-pulse"},
	CategoryLeisure:    {Label: "Lazer", Color: "hsl(330 81% 60%)", Icon: "gamepad"},
	CategoryBills:      {Label: "Contas", Color: "hsl(239 84% 67%)", Icon: "file-text"},
	CategorySalary:     {Label: "Salário", Color: "hsl(160 84% 39%)", Icon: "banknote"},
	CategoryInvestment: {Label: "Investimento", Color: "hsl(189 94% 43%)", Icon: "trending-up"},
	CategoryEducation:  {Label: "Educação", Color: "hsl(271 91% 65%)", Icon: "graduation-cap"},
	CategoryStreaming:  {Label: "Streaming", Color: "hsl(0 100% 64%)", Icon: "tv"},
	CategoryCard:       {Label: "Cartão", Color: "hsl(240 60% 55%)", Icon: "credit-card"},
	CategoryOther:      {Label: "Outros", Color: "hsl(215 16% 47%)", Icon: "more-horizontal"},
}

// Categories returns all categories in display order.
func Categories() []Category {
	return []Category{
		CategoryHousing,
		CategoryFood,
		CategoryTransport,
		CategoryHealth,
		CategoryLeisure,
		CategoryBills,
		CategorySalary,
		CategoryInvestment,
		CategoryEducation,
		CategoryStreaming,
		CategoryCard,
		CategoryOther,
	}
}

// Valid reports whether c is one of the known categories.
func (c Category) Valid() bool {
	_, ok := categoryConfigs[c]
	return ok
}

// Config returns the presentation metadata for c. Unknown categories fall
// back to the "outros" config rather than panicking on stale data.
func (c Category) Config() CategoryConfig {
	if cfg, ok := categoryConfigs[c]; ok {
		return cfg
	}
	return categoryConfigs[CategoryOther]
}

// Label returns the display label for c.
func (c Category) Label() string {
	return c.Config().Label
}
