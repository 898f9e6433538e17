package productcontroller

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/tealeg/xlsx"
	"github.com/techstore/storefront-api/models"
	"gorm.io/gorm"
)

// ImportProductsFromExcel upserts catalog rows from a spreadsheet in the
// export format. Rows with an existing ID update that product, rows without
// one create a new product; unparseable rows are skipped and counted.
func ImportProductsFromExcel(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		excelFileHeader, err := c.FormFile("file")
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Excel file is required"})
			return
		}

		file, err := excelFileHeader.Open()
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to open Excel file"})
			return
		}
		defer file.Close()

		xlFile, err := xlsx.OpenReaderAt(file, excelFileHeader.Size)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to parse Excel file"})
			return
		}

		if len(xlFile.Sheets) == 0 || xlFile.Sheets[0].MaxRow < 2 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Excel file is empty or missing header row"})
			return
		}

		sheet := xlFile.Sheets[0]
		createdCount, updatedCount, skippedCount := 0, 0, 0

		for i := 1; i < sheet.MaxRow; i++ {
			row := sheet.Rows[i]
			get := func(index int) string {
				if index < len(row.Cells) {
					return strings.TrimSpace(row.Cells[index].String())
				}
				return ""
			}

			idStr := get(0)
			name := get(1)
			brand := get(2)
			category := get(3)
			description := get(4)
			price, priceErr := strconv.ParseFloat(get(5), 64)
			countInStock, _ := strconv.Atoi(get(6))
			lowStockThreshold, lowErr := strconv.Atoi(get(7))
			reorderPoint, reorderErr := strconv.Atoi(get(8))
			// column 9 is the derived StockStatus, never imported
			rating, _ := strconv.ParseFloat(get(10), 64)
			image := get(11)

			if name == "" || priceErr != nil {
				skippedCount++
				continue
			}
			if lowErr != nil {
				lowStockThreshold = 10
			}
			if reorderErr != nil {
				reorderPoint = 5
			}

			product := models.Product{
				Name:              name,
				Brand:             brand,
				Category:          category,
				Description:       description,
				Price:             price,
				CountInStock:      countInStock,
				LowStockThreshold: lowStockThreshold,
				ReorderPoint:      reorderPoint,
				Rating:            rating,
				Image:             image,
			}

			if idStr != "" {
				if id, err := strconv.Atoi(idStr); err == nil {
					var existing models.Product
					if err := db.First(&existing, id).Error; err == nil {
						existing.Name = product.Name
						existing.Brand = product.Brand
						existing.Category = product.Category
						existing.Description = product.Description
						existing.Price = product.Price
						existing.CountInStock = product.CountInStock
						existing.LowStockThreshold = product.LowStockThreshold
						existing.ReorderPoint = product.ReorderPoint
						existing.Rating = product.Rating
						existing.Image = product.Image

						if err := db.Save(&existing).Error; err == nil {
							updatedCount++
							continue
						}
					}
				}
			}

			if err := db.Create(&product).Error; err == nil {
				createdCount++
			} else {
				skippedCount++
			}
		}

		c.JSON(http.StatusOK, gin.H{
			"message":       "Import completed",
			"created_count": createdCount,
			"updated_count": updatedCount,
			"skipped_count": skippedCount,
		})
	}
}
