package service

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"bakecost/internal/dto"
	"bakecost/internal/model"
	"bakecost/internal/repository"

	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"
	"github.com/xuri/excelize/v2"
	"gorm.io/gorm"
)

// ExcelService renders priced worksheets and imports material price lists.
// Exports carry derived costs for human review; imports read raw inputs
// only, matching the rule that costs are computed, never stored.
type ExcelService interface {
	ExportMaterials(ctx context.Context) (*excelize.File, string, error)
	ExportRecipes(ctx context.Context) (*excelize.File, string, error)
	ExportProducts(ctx context.Context) (*excelize.File, string, error)
	ImportMaterials(ctx context.Context, r io.Reader) (*dto.ImportResult, error)
}

type excelService struct {
	materials repository.MaterialRepository
	recipes   repository.RecipeRepository
	costing   CostingService
}

func NewExcelService(materials repository.MaterialRepository, recipes repository.RecipeRepository, costing CostingService) ExcelService {
	return &excelService{materials: materials, recipes: recipes, costing: costing}
}

func newSheet(f *excelize.File, sheet string, headers []string) {
	f.SetSheetName("Sheet1", sheet)
	boldStyle, _ := f.NewStyle(&excelize.Style{
		Font:   &excelize.Font{Bold: true, Size: 11},
		Fill:   excelize.Fill{Type: "pattern", Pattern: 1, Color: []string{"#D9E1F2"}},
		Border: []excelize.Border{{Type: "bottom", Color: "000000", Style: 1}},
	})
	for i, h := range headers {
		col, _ := excelize.ColumnNumberToName(i + 1)
		cell := fmt.Sprintf("%s1", col)
		f.SetCellValue(sheet, cell, h)
		f.SetCellStyle(sheet, cell, cell, boldStyle)
	}
}

func (s *excelService) ExportMaterials(ctx context.Context) (*excelize.File, string, error) {
	rows, err := s.materials.All(ctx)
	if err != nil {
		return nil, "", fmt.Errorf("export: reading materials: %w", err)
	}

	f := excelize.NewFile()
	sheet := "Materials"
	newSheet(f, sheet, []string{"Name", "Category", "Price Per Gram"})

	for i, m := range rows {
		row := i + 2
		f.SetCellValue(sheet, fmt.Sprintf("A%d", row), m.Name)
		f.SetCellValue(sheet, fmt.Sprintf("B%d", row), m.Category)
		f.SetCellValue(sheet, fmt.Sprintf("C%d", row), m.PricePerGram.String())
	}
	return f, "materials.xlsx", nil
}

func (s *excelService) ExportRecipes(ctx context.Context) (*excelize.File, string, error) {
	recipes, err := s.recipes.All(ctx)
	if err != nil {
		return nil, "", fmt.Errorf("export: reading recipes: %w", err)
	}

	f := excelize.NewFile()
	sheet := "Recipes"
	newSheet(f, sheet, []string{"Name", "Category", "Portions", "Weight (g)", "Total Cost", "Cost/Portion", "Cost/Gram", "Ingredients"})

	for i := range recipes {
		view := resolveRecipeModel(&recipes[i])
		parts := make([]string, 0, len(view.Ingredients))
		for _, ing := range view.Ingredients {
			parts = append(parts, fmt.Sprintf("%s (%sg)", ing.MaterialName, ing.QuantityGrams.String()))
		}
		row := i + 2
		f.SetCellValue(sheet, fmt.Sprintf("A%d", row), view.Name)
		f.SetCellValue(sheet, fmt.Sprintf("B%d", row), view.Category)
		f.SetCellValue(sheet, fmt.Sprintf("C%d", row), view.TotalPortions)
		f.SetCellValue(sheet, fmt.Sprintf("D%d", row), view.TotalWeightGrams.String())
		f.SetCellValue(sheet, fmt.Sprintf("E%d", row), view.TotalCost.String())
		f.SetCellValue(sheet, fmt.Sprintf("F%d", row), view.CostPerPortion.String())
		f.SetCellValue(sheet, fmt.Sprintf("G%d", row), view.CostPerGram.String())
		f.SetCellValue(sheet, fmt.Sprintf("H%d", row), strings.Join(parts, ", "))
	}
	return f, "recipes.xlsx", nil
}

func (s *excelService) ExportProducts(ctx context.Context) (*excelize.File, string, error) {
	// One page sized far beyond any realistic catalog; exports are whole-table.
	list, err := s.costing.ResolveAllProducts(ctx, dto.ProductFilter{Page: 1, Limit: 500})
	if err != nil {
		return nil, "", fmt.Errorf("export: resolving products: %w", err)
	}

	f := excelize.NewFile()
	sheet := "Products"
	newSheet(f, sheet, []string{"Name", "Category", "Selling Price", "Total Cost", "Management Fee", "Adjusted Cost", "Profit", "Profit Margin %"})

	for i, pv := range list.Data {
		row := i + 2
		f.SetCellValue(sheet, fmt.Sprintf("A%d", row), pv.Name)
		f.SetCellValue(sheet, fmt.Sprintf("B%d", row), pv.Category)
		f.SetCellValue(sheet, fmt.Sprintf("C%d", row), pv.SellingPrice.String())
		f.SetCellValue(sheet, fmt.Sprintf("D%d", row), pv.TotalCost.String())
		f.SetCellValue(sheet, fmt.Sprintf("E%d", row), pv.ManagementFee.String())
		f.SetCellValue(sheet, fmt.Sprintf("F%d", row), pv.AdjustedCost.String())
		f.SetCellValue(sheet, fmt.Sprintf("G%d", row), pv.Profit.String())
		f.SetCellValue(sheet, fmt.Sprintf("H%d", row), pv.ProfitMargin.String())
	}
	return f, "products.xlsx", nil
}

// ImportMaterials upserts materials from a worksheet with columns
// Name | Category | Price Per Gram. Unparseable rows and non-positive
// prices are skipped and reported, never aborting the import.
func (s *excelService) ImportMaterials(ctx context.Context, r io.Reader) (*dto.ImportResult, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("import: reading workbook: %w", err)
	}
	defer f.Close()

	sheet := f.GetSheetName(0)
	rows, err := f.GetRows(sheet)
	if err != nil {
		return nil, fmt.Errorf("import: reading sheet %q: %w", sheet, err)
	}

	result := &dto.ImportResult{}
	for i, cells := range rows {
		if i == 0 {
			continue // header
		}
		rowNum := i + 1
		if len(cells) < 3 || strings.TrimSpace(cells[0]) == "" {
			result.Skipped++
			result.Errors = append(result.Errors, fmt.Sprintf("row %d: missing name or price", rowNum))
			continue
		}
		name := strings.TrimSpace(cells[0])
		category := strings.TrimSpace(cells[1])
		price, err := decimal.NewFromString(strings.TrimSpace(cells[2]))
		if err != nil {
			result.Skipped++
			result.Errors = append(result.Errors, fmt.Sprintf("row %d: bad price %q", rowNum, cells[2]))
			continue
		}
		if price.Sign() <= 0 {
			result.Skipped++
			result.Errors = append(result.Errors, fmt.Sprintf("row %d: non-positive price", rowNum))
			continue
		}

		if err := s.upsertMaterial(ctx, name, category, price); err != nil {
			result.Skipped++
			result.Errors = append(result.Errors, fmt.Sprintf("row %d: %v", rowNum, err))
			continue
		}
		result.Imported++
	}

	log.Info().Int("imported", result.Imported).Int("skipped", result.Skipped).Msg("import: materials worksheet processed")
	return result, nil
}

func (s *excelService) upsertMaterial(ctx context.Context, name, category string, price decimal.Decimal) error {
	existing, err := s.materials.FindByName(ctx, name)
	switch {
	case err == nil:
		existing.Category = category
		existing.PricePerGram = price
		return s.materials.Update(ctx, existing)
	case errors.Is(err, gorm.ErrRecordNotFound):
		return s.materials.Create(ctx, &model.Material{Name: name, Category: category, PricePerGram: price})
	default:
		return err
	}
}
