package techstack

// registryVersion labels the built-in signature table. Bump when the
// table changes so cached reports can be tied to the table that made them.
const registryVersion = "2026.08"

// NewDefaultRegistry compiles the built-in signature table.
func NewDefaultRegistry() (*Registry, error) {
	return NewRegistry(registryVersion, builtinSignatures())
}

// builtinSignatures is the built-in detection table. Within a signature,
// keep pattern strings distinct across layers: the collector counts a
// repeated string once, at the first layer that matched.
func builtinSignatures() []Signature {
	return []Signature{
		// CMS
		{
			Name:     "WordPress",
			Category: CategoryCMS,
			Headers:  []HeaderRule{{Header: "Link", Pattern: `api\.w\.org`}},
			HTML:     []string{`/wp-content/`, `/wp-includes/`, `/wp-admin/`, `wp-json`, `wordpress`},
			Indicators: []Indicator{
				{Pattern: `generator.*wordpress`, Weight: 40},
				{Pattern: `wp-content`, Weight: 30},
				{Pattern: `wp-includes`, Weight: 30},
				{Pattern: `rest_route`, Weight: 30},
			},
			Versions: []string{`WordPress (\d+\.\d+(?:\.\d+)?)`},
		},
		{
			Name:     "Drupal",
			Category: CategoryCMS,
			Headers: []HeaderRule{
				{Header: "X-Generator", Pattern: `Drupal`},
				{Header: "X-Drupal-Cache", Pattern: `.+`},
			},
			HTML:    []string{`/sites/default/`, `/modules/`, `/themes/`, `drupal`},
			Scripts: []string{`Drupal\.settings`},
			Indicators: []Indicator{
				{Pattern: `generator.*drupal`, Weight: 40},
				{Pattern: `sites/default`, Weight: 30},
			},
			Versions: []string{`Drupal (\d+\.\d+(?:\.\d+)?)`},
		},
		{
			Name:     "Joomla",
			Category: CategoryCMS,
			HTML:     []string{`/components/`, `/templates/`, `joomla`, `option=com_`},
			Indicators: []Indicator{
				{Pattern: `generator.*joomla`, Weight: 40},
			},
			Versions: []string{`Joomla! (\d+\.\d+(?:\.\d+)?)`},
		},
		{
			Name:     "Shopify",
			Category: CategoryCMS,
			Headers: []HeaderRule{
				{Header: "X-Shopify-Stage", Pattern: `.+`},
				{Header: "X-ShopId", Pattern: `.+`},
			},
			HTML:    []string{`myshopify\.com`, `cdn\.shopify\.com`, `shopify`},
			Scripts: []string{`Shopify\.theme`},
			Indicators: []Indicator{
				{Pattern: `shopify-analytics`, Weight: 30},
			},
		},
		{
			Name:     "Magento",
			Category: CategoryCMS,
			Headers:  []HeaderRule{{Header: "X-Magento-Cache-Debug", Pattern: `.+`}},
			HTML:     []string{`/skin/frontend/`, `/js/mage/`, `magento`},
			Scripts:  []string{`Mage\.Cookies`},
		},
		{
			Name:     "WooCommerce",
			Category: CategoryCMS,
			HTML:     []string{`woocommerce`, `wc-`, `wp-content/plugins/woocommerce`},
			Indicators: []Indicator{
				{Pattern: `wc-ajax`, Weight: 30},
			},
		},

		// JavaScript frameworks
		{
			Name:     "React",
			Category: CategoryFramework,
			HTML:     []string{`data-reactroot`, `react`},
			Scripts:  []string{`React\.`, `__REACT_DEVTOOLS_`, `_react`},
		},
		{
			Name:     "Vue.js",
			Category: CategoryFramework,
			HTML:     []string{`data-v-`, `vue`},
			Scripts:  []string{`Vue\.`, `__VUE__`},
			Indicators: []Indicator{
				{Pattern: `vue\.js`, Weight: 30},
			},
			Versions: []string{`Vue\.js v(\d+\.\d+\.\d+)`},
		},
		{
			Name:     "Angular",
			Category: CategoryFramework,
			HTML:     []string{`ng-version`, `ng-app`, `angular`},
			Scripts:  []string{`angular\.module`},
		},
		{
			Name:     "Next.js",
			Category: CategoryFramework,
			Headers:  []HeaderRule{{Header: "X-Powered-By", Pattern: `Next\.js`}},
			HTML:     []string{`_next/`, `next\.js`, `next-route`},
			Scripts:  []string{`__NEXT_DATA__`},
		},
		{
			Name:     "Nuxt.js",
			Category: CategoryFramework,
			HTML:     []string{`_nuxt/`, `nuxt`},
			Scripts:  []string{`__NUXT__`},
			Indicators: []Indicator{
				{Pattern: `nuxt\.js`, Weight: 30},
			},
		},

		// CSS frameworks
		{
			Name:     "Bootstrap",
			Category: CategoryCSSFramework,
			HTML:     []string{`bootstrap`, `btn-`, `col-`, `container-`},
			Indicators: []Indicator{
				{Pattern: `bootstrap\.min\.css`, Weight: 30},
				{Pattern: `btn-primary`, Weight: 30},
			},
			Versions: []string{`Bootstrap v(\d+\.\d+\.\d+)`},
		},
		{
			Name:     "Tailwind CSS",
			Category: CategoryCSSFramework,
			HTML:     []string{`tailwind`, `bg-\w+-\d+`, `text-\w+-\d+`},
			Indicators: []Indicator{
				{Pattern: `tailwindcss`, Weight: 30},
			},
		},
		{
			Name:     "Foundation",
			Category: CategoryCSSFramework,
			HTML:     []string{`foundation`, `grid-x`, `cell-`},
			Indicators: []Indicator{
				{Pattern: `foundation\.css`, Weight: 30},
				{Pattern: `foundation\.js`, Weight: 30},
			},
		},

		// Analytics and tracking
		{
			Name:     "Google Analytics",
			Category: CategoryAnalytics,
			HTML:     []string{`google-analytics`, `UA-\d+-\d+`, `(?-i:G-[A-Z0-9]{8,12})`},
			Scripts:  []string{`gtag\(`, `ga\(`, `GoogleAnalyticsObject`},
			Indicators: []Indicator{
				{Pattern: `google-analytics\.com`, Weight: 30},
			},
		},
		{
			Name:     "Google Tag Manager",
			Category: CategoryAnalytics,
			HTML:     []string{`gtm\.js`, `googletagmanager`, `(?-i:GTM-[A-Z0-9]+)`},
			Scripts:  []string{`dataLayer`},
			Indicators: []Indicator{
				{Pattern: `googletagmanager\.com`, Weight: 30},
			},
		},
		{
			Name:     "Facebook Pixel",
			Category: CategoryAnalytics,
			HTML:     []string{`connect\.facebook\.net`, `fbevents\.js`},
			Scripts:  []string{`fbq\(`},
		},
		{
			Name:     "Hotjar",
			Category: CategoryAnalytics,
			HTML:     []string{`static\.hotjar\.com`, `hotjar`},
			Scripts:  []string{`hj\(`},
		},

		// SEO tools
		{
			Name:     "Yoast SEO",
			Category: CategorySEO,
			HTML:     []string{`yoast`, `wp-seo`, `wpseo`},
			Indicators: []Indicator{
				{Pattern: `Yoast SEO`, Weight: 30},
			},
		},
		{
			Name:     "RankMath",
			Category: CategorySEO,
			HTML:     []string{`rank-math`, `rankmath`},
		},
		{
			Name:     "All in One SEO",
			Category: CategorySEO,
			HTML:     []string{`aioseop`, `all-in-one-seo`},
			Indicators: []Indicator{
				{Pattern: `All in One SEO`, Weight: 30},
			},
		},

		// Libraries
		{
			Name:     "jQuery",
			Category: CategoryLibrary,
			HTML:     []string{`jquery`},
			Scripts:  []string{`jQuery`, `\$\.fn`},
			Indicators: []Indicator{
				{Pattern: `jquery\.js`, Weight: 30},
				{Pattern: `jquery\.min\.js`, Weight: 30},
			},
			Versions: []string{`jQuery v(\d+\.\d+\.\d+)`},
		},
		{
			Name:     "Lodash",
			Category: CategoryLibrary,
			HTML:     []string{`lodash`},
			Scripts:  []string{`_\.VERSION`},
			Indicators: []Indicator{
				{Pattern: `lodash\.min\.js`, Weight: 30},
			},
		},
		{
			Name:     "D3.js",
			Category: CategoryLibrary,
			HTML:     []string{`d3\.js`, `d3\.min\.js`},
			Scripts:  []string{`d3\.select`},
		},

		// CDN
		{
			Name:     "Cloudflare",
			Category: CategoryCDN,
			Headers: []HeaderRule{
				{Header: "Cf-Ray", Pattern: `.+`},
				{Header: "Server", Pattern: `cloudflare`},
			},
			HTML: []string{`cloudflare`, `__cfduid`},
		},
		{
			Name:     "Amazon CloudFront",
			Category: CategoryCDN,
			Headers: []HeaderRule{
				{Header: "X-Amz-Cf-Id", Pattern: `.+`},
				{Header: "Via", Pattern: `cloudfront`},
			},
			HTML: []string{`cloudfront\.net`, `amazonaws\.com`},
		},

		// Security
		{
			Name:     "reCAPTCHA",
			Category: CategorySecurity,
			HTML:     []string{`g-recaptcha`, `recaptcha`},
			Scripts:  []string{`grecaptcha`},
			Indicators: []Indicator{
				{Pattern: `google\.com/recaptcha`, Weight: 30},
			},
		},
		{
			Name:     "hCaptcha",
			Category: CategorySecurity,
			HTML:     []string{`h-captcha`, `hcaptcha`},
			Scripts:  []string{`hcaptcha\.render`},
			Indicators: []Indicator{
				{Pattern: `js\.hcaptcha\.com`, Weight: 30},
			},
		},

		// Performance plugins
		{
			Name:     "WP Rocket",
			Category: CategoryPerformance,
			HTML:     []string{`wp-rocket`, `wpr_`},
			Indicators: []Indicator{
				{Pattern: `WP Rocket`, Weight: 30},
			},
		},
		{
			Name:     "W3 Total Cache",
			Category: CategoryPerformance,
			Headers:  []HeaderRule{{Header: "X-Powered-By", Pattern: `W3 Total Cache`}},
			HTML:     []string{`w3tc`, `w3-total-cache`},
			Indicators: []Indicator{
				{Pattern: `w3 total cache`, Weight: 30},
			},
		},
	}
}
