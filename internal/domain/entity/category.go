package entity

import "strings"

// Category clasificación cerrada de productos. Se persiste por nombre.
type Category string

const (
	CategoryFreshProduce           Category = "FRESH_PRODUCE"
	CategoryDairyProducts          Category = "DAIRY_PRODUCTS"
	CategoryMeatAndPoultry         Category = "MEAT_AND_POULTRY"
	CategoryFishAndSeafood         Category = "FISH_AND_SEAFOOD"
	CategoryBakeryProducts         Category = "BAKERY_PRODUCTS"
	CategoryGrainsAndCereals       Category = "GRAINS_AND_CEREALS"
	CategoryBeverages              Category = "BEVERAGES"
	CategorySnacksAndConfectionery Category = "SNACKS_AND_CONFECTIONERY"
	CategoryFrozenFoods            Category = "FROZEN_FOODS"
	CategoryCannedAndJarredGoods   Category = "CANNED_AND_JARRED_GOODS"
	CategoryCondimentsAndSpices    Category = "CONDIMENTS_AND_SPICES"
	CategoryHouseholdSupplies      Category = "HOUSEHOLD_SUPPLIES"
	CategoryPersonalCare           Category = "PERSONAL_CARE"
)

// Categories devuelve todas las categorías en orden de declaración.
func Categories() []Category {
	return []Category{
		CategoryFreshProduce,
		CategoryDairyProducts,
		CategoryMeatAndPoultry,
		CategoryFishAndSeafood,
		CategoryBakeryProducts,
		CategoryGrainsAndCereals,
		CategoryBeverages,
		CategorySnacksAndConfectionery,
		CategoryFrozenFoods,
		CategoryCannedAndJarredGoods,
		CategoryCondimentsAndSpices,
		CategoryHouseholdSupplies,
		CategoryPersonalCare,
	}
}

// ParseCategory acepta el nombre en cualquier combinación de mayúsculas/minúsculas.
func ParseCategory(s string) (Category, bool) {
	c := Category(strings.ToUpper(strings.TrimSpace(s)))
	return c, c.Valid()
}

// Valid indica si la categoría pertenece al conjunto cerrado.
func (c Category) Valid() bool {
	for _, known := range Categories() {
		if c == known {
			return true
		}
	}
	return false
}

// Lower es la representación usada en exportaciones ("dairy_products").
// Forma parte del contrato del documento exportado.
func (c Category) Lower() string {
	return strings.ToLower(string(c))
}
