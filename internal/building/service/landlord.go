package service

import (
	"regexp"
	"strings"

	"buildinghealth_backend/internal/building/domain"
	"buildinghealth_backend/internal/building/reference"
	"buildinghealth_backend/internal/building/transport"
	"buildinghealth_backend/internal/opendata"
	"buildinghealth_backend/platform/sanitize"
)

const (
	portfolioShown       = 20
	registrationDateForm = "Jan 2, 2006"
)

var (
	ownerContact = regexp.MustCompile(`owner|head|corporate`)
	agentContact = regexp.MustCompile(`agent|manag|site`)
	siteContact  = regexp.MustCompile(`site`)
)

func contactsMatching(rows []opendata.Record, re *regexp.Regexp) []opendata.Record {
	return domain.Filter(rows, func(c opendata.Record) bool {
		return re.MatchString(strings.ToLower(c.String("type")))
	})
}

func formatContact(c opendata.Record) transport.Contact {
	name := sanitize.Join(c.String("firstname"), c.String("lastname"))
	if name == "" {
		name = orDefault(sanitize.Text(c.String("corporationname")), "Unknown")
	}
	address := ""
	if c.Has("businesshousenumber") {
		raw := c.String("businesshousenumber") + " " + c.String("businessstreetname") + " " +
			c.String("businessapartment") + " " + c.String("businesscity") + ", " +
			c.String("businessstate") + " " + c.String("businesszip")
		address = sanitize.Text(raw)
	}
	return transport.Contact{
		Name:        name,
		Title:       c.String("type"),
		Corporation: sanitize.Text(c.String("corporationname")),
		Address:     address,
	}
}

func formatRegistrationDate(prefix, raw string) string {
	t, ok := domain.ParseDate(raw)
	if !ok {
		return ""
	}
	return prefix + t.Format(registrationDateForm)
}

func (b *reportBuilder) landlord(building *transport.Building) transport.Landlord {
	reg, _ := b.rs.First(opendata.HPDRegistrations)
	contacts := b.rs.Get(opendata.HPDContacts)
	owners := contactsMatching(contacts, ownerContact)
	agents := contactsMatching(contacts, agentContact)

	out := transport.Landlord{
		Type:           "individual",
		RegistrationID: reg.String("registrationid"),
		Owners:         domain.Map(owners, 0, formatContact),
		Agents:         domain.Map(agents, 0, formatContact),
		SiteManagers:   domain.Map(contactsMatching(contacts, siteContact), 0, formatContact),
		AllContacts:    domain.Map(contacts, 0, formatContact),
		Portfolio:      []transport.PortfolioItem{},
	}

	switch {
	case reg.String("corporationname") != "":
		out.Name = reg.String("corporationname")
		out.Type = "corporation"
	case reg.String("ownerfirstname") != "":
		out.Name = strings.TrimSpace(reg.String("ownerfirstname") + " " + reg.String("ownerlastname"))
	case building != nil:
		out.Name = building.OwnerName
	}
	out.Name = orDefault(out.Name, "Unknown")

	if end := reg.String("registrationenddate"); end != "" {
		out.RegistrationDate = formatRegistrationDate("Last registered: ", reg.First("lastregistrationdate", "registrationenddate"))
		out.RegistrationExpires = formatRegistrationDate("Expires: ", end)
	}

	if len(agents) > 0 {
		out.ManagementCompany = agents[0].String("corporationname")
	}
	if out.ManagementCompany == "" {
		out.ManagementCompany = reg.String("managementagent")
	}
	return out
}

// portfolio returns the raw registration count (the building itself
// included) and up to 20 other buildings.
func portfolio(bbl domain.BBL, rows []opendata.Record) (int, []transport.PortfolioItem) {
	others := domain.Filter(rows, func(r opendata.Record) bool { return r.String("bbl") != bbl.String() })
	items := domain.Map(others, portfolioShown, func(r opendata.Record) transport.PortfolioItem {
		return transport.PortfolioItem{
			BBL:     r.String("bbl"),
			Address: displayAddress(strings.TrimSpace(r.String("housenumber") + " " + r.String("streetname"))),
			Borough: reference.BoroughName(r.String("borough")),
			Zipcode: r.String("zip"),
		}
	})
	return len(rows), items
}
