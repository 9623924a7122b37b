// Package demo produces deterministic synthetic reports. The same generator
// backs both explicit demonstration mode and the fallback path when a live
// source fails, so degraded reports look statistically identical to a chosen
// demo.
package demo

import (
	"fmt"
	"math/rand"
	"time"

	"ads-report-service/internal/aggregate"
	"ads-report-service/internal/model"
)

// Generator builds synthetic lead and campaign data shaped like plausible
// real traffic: CTR inside a 0.5%-3% band, lead volume correlated with spend
// through the configured CPL band.
type Generator struct {
	cplMin float64
	cplMax float64
}

// New returns a Generator with the given CPL band. A degenerate band is
// widened to the 20-80 default.
func New(cplMin, cplMax float64) *Generator {
	if cplMin <= 0 || cplMax <= cplMin {
		cplMin, cplMax = 20, 80
	}
	return &Generator{cplMin: cplMin, cplMax: cplMax}
}

type demoCampaign struct {
	name    string
	adSets  []string
	channel string
}

// Fixed campaign roster per platform. Order matters: generation walks it
// deterministically.
var demoCampaigns = map[model.Platform][]demoCampaign{
	model.PlatformMeta: {
		{name: "Lead Gen | Advogado Trabalhista", adSets: []string{"Lookalike 1%", "Interesses Amplos"}, channel: "Facebook Leads"},
		{name: "Lead Gen | Direito Previdenciário", adSets: []string{"Lookalike 1%", "Remarketing 30d"}, channel: "Instagram Leads"},
		{name: "Remarketing | Consulta Jurídica", adSets: []string{"Remarketing 30d"}, channel: "Facebook Leads"},
	},
	model.PlatformGoogle: {
		{name: "Pesquisa | Advogado Trabalhista", adSets: []string{""}, channel: "Google Ads | Busca Paga"},
		{name: "Pesquisa | Revisão FGTS", adSets: []string{""}, channel: "Google Ads | Busca Paga"},
		{name: "Pesquisa | Ação Trabalhista", adSets: []string{""}, channel: "Google Ads | Busca Paga"},
	},
}

var demoContacts = []struct {
	name  string
	email string
}{
	{"Ana Souza", "ana.souza@example.com"},
	{"Bruno Lima", "bruno.lima@example.com"},
	{"Carla Mendes", "carla.mendes@example.com"},
	{"Diego Rocha", "diego.rocha@example.com"},
	{"Elisa Ferreira", "elisa.ferreira@example.com"},
	{"Fábio Castro", "fabio.castro@example.com"},
	{"Gabriela Nunes", "gabriela.nunes@example.com"},
	{"Henrique Alves", "henrique.alves@example.com"},
}

// Report generates a complete synthetic report for the range. Identical
// (dateRange, seed) inputs produce byte-identical output: generation walks
// platforms, campaigns and days in fixed order off a single seeded source,
// and GeneratedAt is pinned to the end of the range rather than wall clock.
func (g *Generator) Report(dateRange model.DateRange, seed int64) model.Report {
	rng := rand.New(rand.NewSource(seed))

	var leads []model.LeadRecord
	var stats []model.CampaignStat

	for _, platform := range model.Platforms() {
		for _, campaign := range demoCampaigns[platform] {
			// Per-campaign baseline spend, fixed for the whole range so the
			// daily series reads as a smooth curve around it.
			baseSpend := 40 + rng.Float64()*80

			day := model.Day(dateRange.Start)
			end := model.Day(dateRange.End)
			for !day.After(end) {
				spend := baseSpend * (0.8 + 0.4*rng.Float64())
				if wd := day.Weekday(); wd == time.Saturday || wd == time.Sunday {
					spend *= 0.7
				}
				spend = float64(int(spend*100)) / 100

				cpm := 15 + rng.Float64()*20
				impressions := int64(spend / cpm * 1000)
				ctr := 0.005 + rng.Float64()*0.025
				clicks := int64(float64(impressions) * ctr)

				for _, adSet := range campaign.adSets {
					share := 1.0 / float64(len(campaign.adSets))
					stats = append(stats, model.CampaignStat{
						Platform:     platform,
						CampaignName: campaign.name,
						AdSetName:    adSet,
						Date:         day,
						Spend:        float64(int(spend*share*100)) / 100,
						Impressions:  int64(float64(impressions) * share),
						Clicks:       int64(float64(clicks) * share),
					})
				}

				cpl := g.cplMin + rng.Float64()*(g.cplMax-g.cplMin)
				for i := 0; i < int(spend/cpl); i++ {
					contact := demoContacts[rng.Intn(len(demoContacts))]
					adSet := campaign.adSets[rng.Intn(len(campaign.adSets))]
					leads = append(leads, model.LeadRecord{
						Timestamp:     day.Add(time.Duration(8+rng.Intn(12)) * time.Hour),
						SourceChannel: campaign.channel,
						CampaignName:  campaign.name,
						AdSetName:     adSet,
						ContactName:   contact.name,
						Email:         contact.email,
						Phone:         fmt.Sprintf("+55 11 9%04d-%04d", rng.Intn(10000), rng.Intn(10000)),
					})
				}

				day = day.AddDate(0, 0, 1)
			}
		}
	}

	report := aggregate.Aggregate(leads, stats, dateRange)
	report.GeneratedAt = model.Day(dateRange.End)
	report.IsDemoData = true
	return report
}
