package catalog

func rating(r float64) *float64 { return &r }

func reviews(n int) *int { return &n }

// products is the fixed menu. It is never modified after init.
var products = []Product{
	{
		ID:          "sandwich-ham-cheese",
		Name:        "Ham & Cheese Sandwich",
		Description: "Wholegrain bread with ham, cheddar and lettuce",
		Price:       350,
		Image:       "/images/sandwich-ham-cheese.jpg",
		Category:    CategorySandwich,
		Popular:     true,
		Rating:      rating(4.6),
		ReviewCount: reviews(128),
	},
	{
		ID:          "sandwich-tuna",
		Name:        "Tuna Sandwich",
		Description: "Tuna, sweetcorn and light mayo on a soft roll",
		Price:       375,
		Image:       "/images/sandwich-tuna.jpg",
		Category:    CategorySandwich,
		Rating:      rating(4.2),
		ReviewCount: reviews(64),
	},
	{
		ID:          "sandwich-veggie-wrap",
		Name:        "Veggie Wrap",
		Description: "Hummus, roasted peppers and spinach in a wholewheat wrap",
		Price:       400,
		Image:       "/images/sandwich-veggie-wrap.jpg",
		Category:    CategorySandwich,
		IsNew:       true,
		IsEco:       true,
	},
	{
		ID:          "pastry-croissant",
		Name:        "Butter Croissant",
		Description: "Freshly baked every morning",
		Price:       180,
		Image:       "/images/pastry-croissant.jpg",
		Category:    CategoryPastry,
		Popular:     true,
		Rating:      rating(4.8),
		ReviewCount: reviews(210),
	},
	{
		ID:          "pastry-pain-au-chocolat",
		Name:        "Pain au Chocolat",
		Description: "Flaky pastry with two dark chocolate batons",
		Price:       200,
		Image:       "/images/pastry-pain-au-chocolat.jpg",
		Category:    CategoryPastry,
		Rating:      rating(4.7),
		ReviewCount: reviews(156),
	},
	{
		ID:          "pastry-cheese-twist",
		Name:        "Cheese Twist",
		Description: "Puff pastry twist with mature cheddar",
		Price:       220,
		Image:       "/images/pastry-cheese-twist.jpg",
		Category:    CategoryPastry,
		IsNew:       true,
	},
	{
		ID:          "snack-fruit-cup",
		Name:        "Fresh Fruit Cup",
		Description: "Seasonal fruit, cut fresh daily",
		Price:       250,
		Image:       "/images/snack-fruit-cup.jpg",
		Category:    CategorySnack,
		IsEco:       true,
		Rating:      rating(4.4),
		ReviewCount: reviews(47),
	},
	{
		ID:          "snack-veggie-sticks",
		Name:        "Veggie Sticks & Dip",
		Description: "Carrot and cucumber sticks with a yoghurt dip",
		Price:       220,
		Image:       "/images/snack-veggie-sticks.jpg",
		Category:    CategorySnack,
		IsEco:       true,
	},
	{
		ID:          "snack-crisps",
		Name:        "Baked Crisps",
		Description: "Lightly salted baked potato crisps",
		Price:       120,
		Image:       "/images/snack-crisps.jpg",
		Category:    CategorySnack,
		Popular:     true,
		Rating:      rating(4.1),
		ReviewCount: reviews(89),
	},
	{
		ID:          "sweet-chocolate-muffin",
		Name:        "Chocolate Muffin",
		Description: "Double chocolate muffin",
		Price:       230,
		Image:       "/images/sweet-chocolate-muffin.jpg",
		Category:    CategorySweet,
		Popular:     true,
		Rating:      rating(4.9),
		ReviewCount: reviews(302),
	},
	{
		ID:          "sweet-oat-cookie",
		Name:        "Oat & Raisin Cookie",
		Description: "Chewy oat cookie with raisins",
		Price:       150,
		Image:       "/images/sweet-oat-cookie.jpg",
		Category:    CategorySweet,
	},
	{
		ID:          "drink-water",
		Name:        "Still Water",
		Description: "50cl bottle",
		Price:       100,
		Image:       "/images/drink-water.jpg",
		Category:    CategoryDrink,
		IsEco:       true,
	},
	{
		ID:          "drink-orange-juice",
		Name:        "Orange Juice",
		Description: "Freshly squeezed, 25cl",
		Price:       200,
		Image:       "/images/drink-orange-juice.jpg",
		Category:    CategoryDrink,
		Popular:     true,
		Rating:      rating(4.5),
		ReviewCount: reviews(77),
	},
	{
		ID:          "drink-hot-chocolate",
		Name:        "Hot Chocolate",
		Description: "Made with semi-skimmed milk",
		Price:       180,
		Image:       "/images/drink-hot-chocolate.jpg",
		Category:    CategoryDrink,
		IsNew:       true,
	},
}
