package export

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/tealeg/xlsx"

	"pop-search/internal/app/model"
)

var header = []string{"ID", "Title", "Description", "Source URL", "Tags", "Created At"}

// ToExcel writes videos as a single-sheet workbook to w.
func ToExcel(videos []model.VideoSummary, w io.Writer) error {
	file, err := buildWorkbook(videos)
	if err != nil {
		return err
	}
	return file.Write(w)
}

// ToExcelFile writes videos to the workbook at path.
func ToExcelFile(videos []model.VideoSummary, path string) error {
	file, err := buildWorkbook(videos)
	if err != nil {
		return err
	}
	if err := file.Save(path); err != nil {
		return fmt.Errorf("failed to save %s: %w", path, err)
	}
	return nil
}

func buildWorkbook(videos []model.VideoSummary) (*xlsx.File, error) {
	file := xlsx.NewFile()
	sheet, err := file.AddSheet("Videos")
	if err != nil {
		return nil, err
	}

	headerRow := sheet.AddRow()
	for _, h := range header {
		headerRow.AddCell().Value = h
	}

	for _, v := range videos {
		row := sheet.AddRow()
		row.AddCell().Value = v.ID
		row.AddCell().Value = v.Title
		row.AddCell().Value = v.Description
		row.AddCell().Value = v.SourceURL
		row.AddCell().Value = strings.Join(v.Tags, ", ")
		row.AddCell().Value = v.CreatedAt.Format(time.RFC3339)
	}
	return file, nil
}
