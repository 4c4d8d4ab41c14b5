package config

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/mohammad-safakhou/factlens/models"
)

// DefaultSources returns the built-in list of outlets polled for trending news.
func DefaultSources() []models.NewsSource {
	return []models.NewsSource{
		// Global News Agencies
		{Name: "Reuters", URL: "https://www.reuters.com/world", RSS: "https://www.reutersagency.com/feed/?best-topics=all&post_type=best"},
		{Name: "Associated Press", URL: "https://apnews.com", RSS: "https://feeds.apnews.com/rss/world"},
		{Name: "AFP", URL: "https://www.afp.com/en", RSS: "https://www.afp.com/en/news/feed"},
		// North America
		{Name: "New York Times", URL: "https://www.nytimes.com/section/world", RSS: "https://rss.nytimes.com/services/xml/rss/nyt/World.xml"},
		{Name: "Washington Post", URL: "https://www.washingtonpost.com/world", RSS: "http://feeds.washingtonpost.com/rss/world"},
		{Name: "Wall Street Journal", URL: "https://www.wsj.com/news/world", RSS: "https://feeds.a.dj.com/rss/RSSWorldNews.xml"},
		{Name: "CBC News", URL: "https://www.cbc.ca/news/world", RSS: "https://www.cbc.ca/cmlink/rss-world"},
		// Europe
		{Name: "BBC News", URL: "https://www.bbc.com/news", RSS: "http://feeds.bbci.co.uk/news/world/rss.xml"},
		{Name: "The Guardian", URL: "https://www.theguardian.com/international", RSS: "https://www.theguardian.com/international/rss"},
		{Name: "Deutsche Welle", URL: "https://www.dw.com/en/", RSS: "https://rss.dw.com/rdf/rss-en-all"},
		{Name: "France 24", URL: "https://www.france24.com/en/", RSS: "https://www.france24.com/en/rss"},
		{Name: "EuroNews", URL: "https://www.euronews.com", RSS: "https://www.euronews.com/rss"},
		// Asia
		{Name: "Al Jazeera", URL: "https://www.aljazeera.com", RSS: "https://www.aljazeera.com/xml/rss/all.xml"},
		{Name: "South China Morning Post", URL: "https://www.scmp.com", RSS: "https://www.scmp.com/rss/91/feed"},
		{Name: "The Japan Times", URL: "https://www.japantimes.co.jp", RSS: "https://www.japantimes.co.jp/feed/"},
		{Name: "The Times of India", URL: "https://timesofindia.indiatimes.com", RSS: "https://timesofindia.indiatimes.com/rssfeeds/296589292.cms"},
		{Name: "The Straits Times", URL: "https://www.straitstimes.com", RSS: "https://www.straitstimes.com/news/world/rss.xml"},
		// Australia & Pacific
		{Name: "ABC News Australia", URL: "https://www.abc.net.au/news", RSS: "https://www.abc.net.au/news/feed/45910/rss.xml"},
		{Name: "New Zealand Herald", URL: "https://www.nzherald.co.nz", RSS: "https://www.nzherald.co.nz/rss/world"},
		// Africa
		{Name: "News24", URL: "https://www.news24.com", RSS: "https://feeds.24.com/articles/news24/World/rss"},
		{Name: "AllAfrica", URL: "https://allafrica.com", RSS: "https://allafrica.com/tools/headlines/rdf/latest/headlines.rdf"},
		// Middle East
		{Name: "The Jerusalem Post", URL: "https://www.jpost.com", RSS: "https://www.jpost.com/rss/rssfeed.aspx"},
		{Name: "Arab News", URL: "https://www.arabnews.com", RSS: "https://www.arabnews.com/rss.xml"},
		// Latin America
		{Name: "Buenos Aires Times", URL: "https://www.batimes.com.ar", RSS: "https://www.batimes.com.ar/feed/rss"},
		{Name: "The Rio Times", URL: "https://www.riotimesonline.com", RSS: "https://www.riotimesonline.com/feed/"},
		// Technology News
		{Name: "TechCrunch", URL: "https://techcrunch.com", RSS: "https://techcrunch.com/feed/"},
		{Name: "The Verge", URL: "https://www.theverge.com", RSS: "https://www.theverge.com/rss/index.xml"},
		{Name: "Wired", URL: "https://www.wired.com", RSS: "https://www.wired.com/feed/rss"},
		// Business News
		{Name: "Financial Times", URL: "https://www.ft.com", RSS: "https://www.ft.com/world?format=rss"},
		{Name: "Bloomberg", URL: "https://www.bloomberg.com", RSS: "https://www.bloomberg.com/feeds/bbiz/sitemap_index.xml"},
		{Name: "Forbes", URL: "https://www.forbes.com", RSS: "https://www.forbes.com/real-time/feed2/"},
		// UAE News Sources
		{Name: "Khaleej Times", URL: "https://www.khaleejtimes.com", RSS: "https://www.khaleejtimes.com/rss"},
		{Name: "Gulf News", URL: "https://gulfnews.com", RSS: "https://gulfnews.com/rss"},
		{Name: "The National UAE", URL: "https://www.thenationalnews.com", RSS: "https://www.thenationalnews.com/rss"},
		{Name: "Emirates 24/7", URL: "https://www.emirates247.com", RSS: "https://www.emirates247.com/rss"},
		{Name: "Dubai Eye", URL: "https://www.dubaieye1038.com", RSS: "https://www.dubaieye1038.com/feed/"},
		// Indian News Sources
		{Name: "Times of India", URL: "https://timesofindia.indiatimes.com", RSS: "https://timesofindia.indiatimes.com/rssfeeds/-2128936835.cms"},
		{Name: "NDTV", URL: "https://www.ndtv.com", RSS: "https://feeds.feedburner.com/ndtvnews-top-stories"},
		{Name: "Hindustan Times", URL: "https://www.hindustantimes.com", RSS: "https://www.hindustantimes.com/rss/top-news"},
		{Name: "The Hindu", URL: "https://www.thehindu.com", RSS: "https://www.thehindu.com/rss/top-news/"},
		{Name: "Indian Express", URL: "https://indianexpress.com", RSS: "https://indianexpress.com/feed/"},
		{Name: "Economic Times", URL: "https://economictimes.indiatimes.com", RSS: "https://economictimes.indiatimes.com/rssfeedsdefault.cms"},
		{Name: "Mint", URL: "https://www.livemint.com", RSS: "https://www.livemint.com/rss"},
		{Name: "Business Standard", URL: "https://www.business-standard.com", RSS: "https://www.business-standard.com/rss/latest.rss"},
		{Name: "News18", URL: "https://www.news18.com", RSS: "https://www.news18.com/rss/latest.xml"},
		{Name: "India Today", URL: "https://www.indiatoday.in", RSS: "https://www.indiatoday.in/rss/home"},
		// Regional Indian News (Multiple Languages)
		{Name: "Dainik Bhaskar", URL: "https://www.bhaskar.com", RSS: "https://www.bhaskar.com/rss-feed/521/"},
		{Name: "Malayala Manorama", URL: "https://www.manoramaonline.com", RSS: "https://www.manoramaonline.com/news.rss"},
		{Name: "Mathrubhumi", URL: "https://www.mathrubhumi.com", RSS: "https://www.mathrubhumi.com/rss"},
		{Name: "Lokmat", URL: "https://www.lokmat.com", RSS: "https://www.lokmat.com/rss/"},
		// UAE Business News
		{Name: "Arabian Business", URL: "https://www.arabianbusiness.com", RSS: "https://www.arabianbusiness.com/rss"},
		{Name: "Zawya UAE", URL: "https://www.zawya.com/uae", RSS: "https://www.zawya.com/uae/en/rss"},
		{Name: "UAE News 4U", URL: "https://uaenews4u.com", RSS: "https://uaenews4u.com/feed/"},
	}
}

type sourcesFile struct {
	Sources []models.NewsSource `yaml:"sources"`
}

// LoadSources reads a YAML source list. An empty path returns DefaultSources.
func LoadSources(path string) ([]models.NewsSource, error) {
	if strings.TrimSpace(path) == "" {
		return DefaultSources(), nil
	}
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read sources: %w", err)
	}
	var f sourcesFile
	if err := yaml.Unmarshal(raw, &f); err != nil {
		return nil, fmt.Errorf("decode sources: %w", err)
	}
	if len(f.Sources) == 0 {
		return nil, fmt.Errorf("sources file %s lists no sources", path)
	}
	for i, s := range f.Sources {
		if strings.TrimSpace(s.Name) == "" || strings.TrimSpace(s.URL) == "" {
			return nil, fmt.Errorf("source %d: name and url are required", i)
		}
	}
	return f.Sources, nil
}
