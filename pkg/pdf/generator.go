package pdf

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/signintech/gopdf"

	"github.com/barangay-connect/backend/internal/domain"
)

var ErrFontNotLoaded = errors.New("pdf: ttf font not loaded")

const (
	fontName   = "dejavu"
	marginLeft = 50
	pageBottom = 750
)

// Receipt is everything printed on a registration receipt.
type Receipt struct {
	Account   domain.Account
	Personal  domain.PersonalRecord
	Addresses []domain.AddressRecord
	Role      domain.RoleRecord
}

type Generator struct {
	fontPath string
	now      func() time.Time
}

// NewGenerator checks that the font exists. gopdf cannot render text without a TTF font.
func NewGenerator(fontPath string) (*Generator, error) {
	if _, err := os.Stat(fontPath); err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrFontNotLoaded, fontPath, err)
	}

	return &Generator{fontPath: fontPath, now: time.Now}, nil
}

// GenerateReceipt renders the registration receipt. Each call builds its own document.
func (g *Generator) GenerateReceipt(r Receipt) ([]byte, error) {
	doc := &document{pdf: &gopdf.GoPdf{}}
	doc.pdf.Start(gopdf.Config{PageSize: *gopdf.PageSizeA4, Unit: gopdf.Unit_PT})
	if err := doc.pdf.AddTTFFont(fontName, g.fontPath); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrFontNotLoaded, err)
	}
	doc.pdf.AddPage()

	doc.header("BARANGAY REGISTRATION RECEIPT")

	doc.pdf.SetY(100)
	doc.section("Account number", r.Account.ID.String())
	doc.section("Registered as", roleText(r.Role.Role))
	doc.section("Name", r.Personal.FullName())
	doc.section("Birth date", r.Personal.BirthDate.Format("January 2, 2006"))
	doc.section("Mobile number", verifiedText(r.Account.Phone, r.Account.PhoneVerifiedAt))
	doc.section("Email", verifiedText(r.Account.Email, r.Account.EmailVerifiedAt))

	for _, a := range r.Addresses {
		doc.section(addressTitle(a.Kind), a.Line())
	}

	if b := r.Role.Details.Business; b != nil {
		doc.section("Business", fmt.Sprintf("%s (%s)", b.Name, b.Type))
	}
	for _, role := range domain.FamilyRoles {
		if m, ok := r.Role.Details.Members[role]; ok {
			doc.section(familyTitle(role), m.FullName())
		}
	}

	doc.footer(fmt.Sprintf("Issued %s", g.now().Format("02 Jan 2006 15:04")))

	var buf bytes.Buffer
	if _, err := doc.pdf.WriteTo(&buf); err != nil {
		return nil, fmt.Errorf("failed to output PDF: %w", err)
	}

	return buf.Bytes(), nil
}

type document struct {
	pdf *gopdf.GoPdf
}

func (d *document) header(title string) {
	d.pdf.SetFillColor(0, 56, 168)
	d.pdf.RectFromUpperLeftWithStyle(0, 0, 595, 70, "F")

	d.pdf.SetTextColor(255, 255, 255)
	_ = d.pdf.SetFont(fontName, "", 20)
	d.pdf.SetXY(marginLeft, 30)
	_ = d.pdf.Cell(nil, title)
	d.pdf.SetTextColor(0, 0, 0)
}

func (d *document) section(title, content string) {
	y := d.pdf.GetY() + 20
	if y > pageBottom {
		d.pdf.AddPage()
		y = 50
	}

	d.pdf.SetXY(marginLeft, y)
	_ = d.pdf.SetFont(fontName, "", 10)
	d.pdf.SetTextColor(110, 110, 110)
	_ = d.pdf.Cell(nil, title)

	d.pdf.SetXY(marginLeft, d.pdf.GetY()+14)
	_ = d.pdf.SetFont(fontName, "", 12)
	d.pdf.SetTextColor(0, 0, 0)
	_ = d.pdf.MultiCell(&gopdf.Rect{W: 495, H: 15}, content)
}

func (d *document) footer(text string) {
	d.pdf.SetXY(marginLeft, 780)
	_ = d.pdf.SetFont(fontName, "", 9)
	d.pdf.SetTextColor(150, 150, 150)
	_ = d.pdf.Cell(nil, text)
}

func roleText(role domain.RoleType) string {
	switch role {
	case domain.RoleResident:
		return "Resident"
	case domain.RoleBusinessRespondent:
		return "Business respondent"
	case domain.RoleFamilyHead:
		return "Head of family"
	default:
		return string(role)
	}
}

func addressTitle(kind domain.AddressKind) string {
	if kind == domain.AddressPermanent {
		return "Permanent address"
	}
	return "Present address"
}

func familyTitle(role domain.FamilyRole) string {
	switch role {
	case domain.FamilyRoleFather:
		return "Father"
	case domain.FamilyRoleMother:
		return "Mother"
	case domain.FamilyRoleGuardian:
		return "Guardian"
	default:
		return string(role)
	}
}

func verifiedText(value string, verifiedAt *time.Time) string {
	if verifiedAt == nil {
		return value
	}
	return fmt.Sprintf("%s (verified %s)", value, verifiedAt.Format("02 Jan 2006"))
}
