package controllers

import (
	"github.com/gin-gonic/gin"
	"net/http"
	"travelcraft/internal/models/response_models"
	"travelcraft/internal/services"
	"travelcraft/pkg/utils"
)

type CatalogController struct {
	catalog services.CatalogServiceInterface
}

func NewCatalogController(catalog services.CatalogServiceInterface) *CatalogController {
	return &CatalogController{
		catalog: catalog,
	}
}

// ListCountries godoc
// @Summary List the country catalog
// @Description Every country with its cities, in display order
// @Tags Catalog
// @Produce json
// @Success 200 {array} response_models.CountryCities
// @Router /api/catalog [get]
func (cc *CatalogController) ListCountries(c *gin.Context) {
	countries := cc.catalog.Countries()
	out := make([]response_models.CountryCities, 0, len(countries))
	for _, country := range countries {
		out = append(out, response_models.CountryCities{
			Country: country,
			Cities:  cc.catalog.CitiesFor(country),
		})
	}

	utils.RespondSuccess(c, out, "Catalog fetched successfully")
}

// GetCities godoc
// @Summary Cities of one country
// @Tags Catalog
// @Produce json
// @Param country path string true "Country name"
// @Success 200 {object} response_models.CountryCities
// @Failure 404 {object} utils.APIResponse
// @Router /api/catalog/{country} [get]
func (cc *CatalogController) GetCities(c *gin.Context) {
	country := c.Param("country")
	cities := cc.catalog.CitiesFor(country)
	if len(cities) == 0 {
		utils.RespondError(c, http.StatusNotFound, "Country not found")
		return
	}

	utils.RespondSuccess(c, response_models.CountryCities{Country: country, Cities: cities}, "Cities fetched successfully")
}
