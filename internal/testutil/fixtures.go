package testutil

// Site configuration documents shared by tests.
const (
	WortenSiteKey = "worten.pt/produtos"
	WortenConfig  = `{"models":{"8110317":"worten_tv.glb"},"default":"https://3dmodels-7c1.pages.dev/default.html"}`
	WortenTarget  = "https://www.worten.pt/produtos/tv-samsung-qled-55/8110317"

	AudiSiteKey = "configurador.audi.pt"
	AudiConfig  = `{"models":{"30A":"audi/a3_sportback.glb","20A":"audi/a1.glb"},"default":"https://www.audi.pt/pt/web/pt.html"}`
	AudiTarget  = "https://configurador.audi.pt/cc-pt/pt_PT_AUDI23/A/auv/30A?trim=advanced"

	ViewerHTML  = "<html><head><title>viewer</title></head><body><model-viewer></model-viewer></body></html>"
	DefaultHTML = "<html><body>no model available</body></html>"
)
