package export

import (
	"fmt"
	"strings"
	"time"

	"github.com/xuri/excelize/v2"
)

// Sheet names of the workbook.
const (
	SheetEntities       = "Entities"
	SheetRelationships  = "Relationships"
	SheetSocialAccounts = "Social Accounts"
)

var (
	entityHeader       = []any{"ID", "Name", "Type", "Tags", "Notes", "IPs", "Domains", "Hosting Info", "Web Archive URL", "Avatar URL", "Created At"}
	relationshipHeader = []any{"ID", "From", "To", "Type", "Notes", "Created At"}
	accountHeader      = []any{"ID", "Entity", "Platform", "Username", "Platform User ID", "Display Name", "Profile URL", "Notes"}
)

// WriteXLSX renders d as a workbook with one sheet per record kind.
// Relationship and account rows reference entities by name.
func WriteXLSX(d Dossier) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	names := make(map[string]string, len(d.Entities))
	for _, e := range d.Entities {
		names[e.ID] = e.Name
	}

	entityRows := make([][]any, 0, len(d.Entities))
	accountRows := make([][]any, 0)
	for _, e := range d.Entities {
		tagNames := make([]string, len(e.Tags))
		for i, t := range e.Tags {
			tagNames[i] = t.Name
		}
		entityRows = append(entityRows, []any{
			e.ID, e.Name, string(e.Type), strings.Join(tagNames, ", "),
			deref(e.Notes), deref(e.IPs), deref(e.Domains), deref(e.HostingInfo),
			deref(e.WebArchiveURL), deref(e.AvatarURL), timestamp(e.CreatedAt),
		})
		for _, a := range e.SocialAccounts {
			accountRows = append(accountRows, []any{
				a.ID, e.Name, string(a.Platform), deref(a.Username), deref(a.UserIDPlatform),
				deref(a.DisplayName), deref(a.ProfileURL), deref(a.Notes),
			})
		}
	}

	relationshipRows := make([][]any, 0, len(d.Relationships))
	for _, r := range d.Relationships {
		relationshipRows = append(relationshipRows, []any{
			r.ID, entityName(names, r.EntityAID), entityName(names, r.EntityBID),
			r.RelationshipType, deref(r.Notes), timestamp(r.CreatedAt),
		})
	}

	sheets := []struct {
		name   string
		header []any
		rows   [][]any
	}{
		{SheetEntities, entityHeader, entityRows},
		{SheetRelationships, relationshipHeader, relationshipRows},
		{SheetSocialAccounts, accountHeader, accountRows},
	}

	for _, s := range sheets {
		if _, err := f.NewSheet(s.name); err != nil {
			return nil, fmt.Errorf("create sheet %s: %w", s.name, err)
		}
		if err := writeRows(f, s.name, s.header, s.rows); err != nil {
			return nil, err
		}
	}

	if err := f.DeleteSheet("Sheet1"); err != nil {
		return nil, fmt.Errorf("delete default sheet: %w", err)
	}
	if idx, err := f.GetSheetIndex(SheetEntities); err == nil {
		f.SetActiveSheet(idx)
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("write workbook: %w", err)
	}
	return buf.Bytes(), nil
}

func writeRows(f *excelize.File, sheet string, header []any, rows [][]any) error {
	if err := f.SetSheetRow(sheet, "A1", &header); err != nil {
		return fmt.Errorf("write %s header: %w", sheet, err)
	}
	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(sheet, cell, &row); err != nil {
			return fmt.Errorf("write %s row %d: %w", sheet, i+1, err)
		}
	}
	return nil
}

func entityName(names map[string]string, id string) string {
	if n, ok := names[id]; ok {
		return n
	}
	return id
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

func timestamp(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.UTC().Format(time.RFC3339)
}
