// Package portal fetches scholarship listings from government and aggregator
// portals and normalizes them into canonical records.
package portal

// Portal describes one scrape target. State is empty for national portals.
type Portal struct {
	Name  string
	State string
	URL   string
	// DefaultType seeds the scholarship type when the page gives no signal.
	DefaultType string
}

// NationalPortals lists the country-wide sources.
func NationalPortals() []Portal {
	return []Portal{
		{Name: "National Scholarship Portal (NSP)", URL: "https://scholarships.gov.in/public/schemeGuidelines", DefaultType: "government"},
		{Name: "Buddy4Study", URL: "https://www.buddy4study.com/scholarships", DefaultType: "private"},
		{Name: "Vidyasaarathi", URL: "https://vidyasaarathi.co.in/Vidyasaarathi/index", DefaultType: "private"},
	}
}

// StatePortals lists the per-state scholarship portals.
func StatePortals() []Portal {
	return []Portal{
		{State: "Jammu and Kashmir", URL: "https://jkscholarship.gov.in"},
		{State: "Himachal Pradesh", URL: "https://hpepass.cgg.gov.in"},
		{State: "Punjab", URL: "https://scholarships.punjab.gov.in"},
		{State: "Haryana", URL: "https://hryedumis.gov.in"},
		{State: "Uttarakhand", URL: "https://escholarship.uk.gov.in"},
		{State: "Uttar Pradesh", URL: "https://scholarship.up.gov.in"},
		{State: "Rajasthan", URL: "https://sje.rajasthan.gov.in/Scholarship"},
		{State: "Delhi", URL: "https://edistrict.delhigovt.nic.in"},
		{State: "Gujarat", URL: "https://digitalgujarat.gov.in"},
		{State: "Maharashtra", URL: "https://mahadbt.maharashtra.gov.in"},
		{State: "Goa", URL: "https://scholarships.goa.gov.in"},
		{State: "Madhya Pradesh", URL: "https://scholarshipportal.mp.nic.in"},
		{State: "Chhattisgarh", URL: "https://cgscholarship.cg.nic.in"},
		{State: "Bihar", URL: "https://state.bihar.gov.in/socialwelfare"},
		{State: "Jharkhand", URL: "https://ekalyan.jharkhand.gov.in"},
		{State: "West Bengal", URL: "https://wbmdfcscholarship.in"},
		{State: "Odisha", URL: "https://scholarship.odisha.gov.in"},
		{State: "Andhra Pradesh", URL: "https://jnanabhumi.ap.gov.in"},
		{State: "Telangana", URL: "https://telanganaepass.cgg.gov.in"},
		{State: "Karnataka", URL: "https://karepass.cgg.gov.in"},
		{State: "Tamil Nadu", URL: "https://tn.gov.in/scheme"},
		{State: "Kerala", URL: "https://dcescholarship.kerala.gov.in"},
		{State: "Assam", URL: "https://directorateofhighereducation.assam.gov.in"},
		{State: "Meghalaya", URL: "https://meghalaya.gov.in/scholarship"},
		{State: "Manipur", URL: "https://manipur.gov.in/scholarship"},
		{State: "Mizoram", URL: "https://scholarship.mizoram.gov.in"},
		{State: "Tripura", URL: "https://scholarships.tripura.gov.in"},
		{State: "Nagaland", URL: "https://nagaland.gov.in/scholarship"},
		{State: "Arunachal Pradesh", URL: "https://arunachal.gov.in/scholarship"},
		{State: "Sikkim", URL: "https://sikkim.gov.in/scholarship"},
	}
}

// CorporateSources lists CSR scholarship providers.
func CorporateSources() []Portal {
	return []Portal{
		{Name: "Tata Trusts", URL: "https://tatatrusts.org", DefaultType: "corporate"},
		{Name: "Reliance Foundation", URL: "https://reliancefoundation.org", DefaultType: "corporate"},
		{Name: "Infosys Foundation", URL: "https://infosys.com/infosys-foundation", DefaultType: "corporate"},
		{Name: "Wipro Foundation", URL: "https://wiprofoundation.org", DefaultType: "corporate"},
		{Name: "HDFC Bank", URL: "https://hdfcbank.com/csr", DefaultType: "corporate"},
		{Name: "ICICI Foundation", URL: "https://icicifoundation.org", DefaultType: "corporate"},
		{Name: "Azim Premji Foundation", URL: "https://azimpremjifoundation.org", DefaultType: "corporate"},
	}
}
