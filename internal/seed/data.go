package seed

import (
	"github.com/deppfellow/carcatalog/internal/model"
	"github.com/shopspring/decimal"
)

type brandSeed struct {
	Name        string
	Country     string
	FoundedYear int
	Description string
}

type carSeed struct {
	Brand        string
	Model        string
	Year         int
	Price        string
	Mileage      int
	FuelType     string
	Transmission string
	BodyType     string
	Color        string
	Horsepower   int
}

var brands = []brandSeed{
	{Name: "Toyota", Country: "Japan", FoundedYear: 1937, Description: "Japanese manufacturer known for reliability and hybrids."},
	{Name: "Honda", Country: "Japan", FoundedYear: 1948, Description: "Japanese maker of cars, motorcycles and engines."},
	{Name: "BMW", Country: "Germany", FoundedYear: 1916, Description: "Bavarian maker of premium sedans and SUVs."},
	{Name: "Volkswagen", Country: "Germany", FoundedYear: 1937, Description: "German volume manufacturer."},
	{Name: "Ford", Country: "United States", FoundedYear: 1903, Description: "American manufacturer of trucks and cars."},
	{Name: "Tesla", Country: "United States", FoundedYear: 2003, Description: "Electric vehicle manufacturer."},
	{Name: "Hyundai", Country: "South Korea", FoundedYear: 1967, Description: "South Korean manufacturer."},
}

var cars = []carSeed{
	{Brand: "Toyota", Model: "Corolla", Year: 2022, Price: "21500.00", Mileage: 18000, FuelType: model.FuelPetrol, Transmission: model.TransmissionAutomatic, BodyType: "sedan", Color: "White", Horsepower: 169},
	{Brand: "Toyota", Model: "RAV4 Hybrid", Year: 2023, Price: "33900.00", Mileage: 9000, FuelType: model.FuelHybrid, Transmission: model.TransmissionAutomatic, BodyType: "suv", Color: "Silver", Horsepower: 219},
	{Brand: "Honda", Model: "Civic", Year: 2021, Price: "19800.00", Mileage: 32000, FuelType: model.FuelPetrol, Transmission: model.TransmissionManual, BodyType: "hatchback", Color: "Red", Horsepower: 158},
	{Brand: "Honda", Model: "CR-V", Year: 2022, Price: "29500.00", Mileage: 21000, FuelType: model.FuelPetrol, Transmission: model.TransmissionAutomatic, BodyType: "suv", Color: "Blue", Horsepower: 190},
	{Brand: "BMW", Model: "320d", Year: 2020, Price: "27900.00", Mileage: 54000, FuelType: model.FuelDiesel, Transmission: model.TransmissionAutomatic, BodyType: "sedan", Color: "Black", Horsepower: 190},
	{Brand: "BMW", Model: "X5", Year: 2023, Price: "68500.00", Mileage: 7000, FuelType: model.FuelHybrid, Transmission: model.TransmissionAutomatic, BodyType: "suv", Color: "Grey", Horsepower: 389},
	{Brand: "Volkswagen", Model: "Golf", Year: 2021, Price: "18900.00", Mileage: 41000, FuelType: model.FuelPetrol, Transmission: model.TransmissionManual, BodyType: "hatchback", Color: "Grey", Horsepower: 130},
	{Brand: "Volkswagen", Model: "Passat Variant", Year: 2019, Price: "17500.00", Mileage: 88000, FuelType: model.FuelDiesel, Transmission: model.TransmissionAutomatic, BodyType: "wagon", Color: "Blue", Horsepower: 150},
	{Brand: "Ford", Model: "F-150", Year: 2022, Price: "45900.00", Mileage: 26000, FuelType: model.FuelPetrol, Transmission: model.TransmissionAutomatic, BodyType: "pickup", Color: "Black", Horsepower: 400},
	{Brand: "Ford", Model: "Mustang", Year: 2021, Price: "36500.00", Mileage: 15000, FuelType: model.FuelPetrol, Transmission: model.TransmissionManual, BodyType: "coupe", Color: "Yellow", Horsepower: 450},
	{Brand: "Tesla", Model: "Model 3", Year: 2023, Price: "39900.00", Mileage: 12000, FuelType: model.FuelElectric, Transmission: model.TransmissionAutomatic, BodyType: "sedan", Color: "White", Horsepower: 283},
	{Brand: "Tesla", Model: "Model Y", Year: 2022, Price: "44900.00", Mileage: 23000, FuelType: model.FuelElectric, Transmission: model.TransmissionAutomatic, BodyType: "suv", Color: "Red", Horsepower: 384},
	{Brand: "Hyundai", Model: "Ioniq 5", Year: 2023, Price: "41200.00", Mileage: 8000, FuelType: model.FuelElectric, Transmission: model.TransmissionAutomatic, BodyType: "suv", Color: "Green", Horsepower: 320},
	{Brand: "Hyundai", Model: "Tucson", Year: 2020, Price: "21900.00", Mileage: 61000, FuelType: model.FuelDiesel, Transmission: model.TransmissionManual, BodyType: "suv", Color: "White", Horsepower: 136},
}

func (b brandSeed) payload() *model.CreateBrandPayload {
	return &model.CreateBrandPayload{
		Name:        b.Name,
		Country:     &b.Country,
		FoundedYear: &b.FoundedYear,
		Description: &b.Description,
	}
}

func (c carSeed) payload(brand *model.Brand) *model.CreateCarPayload {
	price := decimal.RequireFromString(c.Price)
	return &model.CreateCarPayload{
		BrandID:      brand.ID,
		Model:        c.Model,
		Year:         c.Year,
		Price:        &price,
		Mileage:      c.Mileage,
		FuelType:     c.FuelType,
		Transmission: c.Transmission,
		BodyType:     c.BodyType,
		Color:        &c.Color,
		Horsepower:   &c.Horsepower,
	}
}
