package guard

import "strings"

// Classification is the outcome of running a user-agent string through the
// classifier. Allowed is only meaningful when IsBot is true: an allowed bot
// is a crawler we let through (major search/social engines).
type Classification struct {
	IsBot   bool
	Allowed bool
}

// allowedBotTokens are crawlers permitted to bypass blocking. Checked before
// the deny-list so a UA containing both "googlebot" and "bot" is allowed.
var allowedBotTokens = []string{
	"googlebot",
	"bingbot",
	"slurp",
	"duckduckbot",
	"baiduspider",
	"yandexbot",
	"applebot",
	"facebookexternalhit",
	"twitterbot",
	"linkedinbot",
	"whatsapp",
	"telegrambot",
}

// deniedBotTokens cover generic crawler markers, scripting HTTP clients,
// scanners and exploit tools, and SEO/AI-training crawlers.
var deniedBotTokens = []string{
	// generic crawler markers
	"bot", "crawler", "spider", "scraper", "fetch",
	// scripting HTTP clients
	"curl", "wget", "python-requests", "python-urllib", "go-http-client",
	"okhttp", "java/", "libwww-perl", "httpclient", "aiohttp", "node-fetch",
	"axios", "scrapy",
	// headless browsers and automation
	"headlesschrome", "phantomjs", "selenium", "puppeteer", "playwright",
	// scanners and exploit tools
	"nikto", "sqlmap", "nmap", "masscan", "zgrab", "nuclei",
	// SEO and AI-training crawlers
	"semrush", "ahrefs", "mj12bot", "dotbot", "blexbot", "dataforseo",
	"gptbot", "ccbot", "claudebot", "bytespider", "petalbot",
}

// browserTokens are engine markers every real browser UA carries at least
// one of. A UA with none of these is treated as automation.
var browserTokens = []string{
	"mozilla", "chrome", "safari", "firefox", "edge", "opera",
}

// Classify maps every user-agent string to exactly one of allowed-bot,
// denied-bot, or human. Empty UA is always a bot (nothing to allow-list).
func Classify(userAgent string) Classification {
	ua := strings.ToLower(strings.TrimSpace(userAgent))
	if ua == "" {
		return Classification{IsBot: true}
	}

	for _, token := range allowedBotTokens {
		if strings.Contains(ua, token) {
			return Classification{IsBot: true, Allowed: true}
		}
	}

	for _, token := range deniedBotTokens {
		if strings.Contains(ua, token) {
			return Classification{IsBot: true}
		}
	}

	for _, token := range browserTokens {
		if strings.Contains(ua, token) {
			return Classification{}
		}
	}

	// No browser engine marker. Unusual embedded clients get caught here;
	// that false-positive risk is accepted.
	return Classification{IsBot: true}
}

// IsAllowedBot reports whether the UA belongs to an explicitly permitted
// crawler.
func IsAllowedBot(userAgent string) bool {
	c := Classify(userAgent)
	return c.IsBot && c.Allowed
}
