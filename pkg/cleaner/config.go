// Package cleaner strips vendor pricing pages down to their content:
// resource tags, comments and navigational chrome are removed, tabbed
// panels are flattened into linear flow, and empty containers pruned.
// All passes mutate the document in place and degrade gracefully when
// their targets are absent.
package cleaner

// Config controls which cleaning passes run and what they target.
type Config struct {
	// StripResourceTags removes link, style and script elements.
	StripResourceTags bool `json:"strip_resource_tags"`

	// StripComments removes HTML comment nodes.
	StripComments bool `json:"strip_comments"`

	// InteractiveSelectors lists the navigational chrome to remove.
	InteractiveSelectors []string `json:"interactive_selectors"`

	// FlattenTabs hoists tabbed panel content into linear flow.
	FlattenTabs bool `json:"flatten_tabs"`

	// TabLikeClasses are container classes flattened after the main
	// tab-content pass.
	TabLikeClasses []string `json:"tab_like_classes"`

	// TabVocabulary marks elements as tab scaffolding when any word
	// appears as a substring of their class attribute.
	TabVocabulary []string `json:"tab_vocabulary"`

	// PanelContentTags are the element names extracted from tab panels.
	PanelContentTags []string `json:"panel_content_tags"`

	// ContainerContentTags are the element names extracted from
	// tab-like containers. Excludes div so nested wrappers are not
	// hoisted alongside their own contents.
	ContainerContentTags []string `json:"container_content_tags"`

	// PruneEmptyContainers removes containers left with no text and no
	// important descendants.
	PruneEmptyContainers bool `json:"prune_empty_containers"`

	// MaxPrunePasses bounds the empty-container sweep.
	MaxPrunePasses int `json:"max_prune_passes"`

	// ImportantTags protect an otherwise empty container from pruning.
	ImportantTags []string `json:"important_tags"`
}

// DefaultConfig returns the configuration tuned for vendor pricing pages.
func DefaultConfig() *Config {
	return &Config{
		StripResourceTags: true,
		StripComments:     true,
		InteractiveSelectors: []string{
			"div.region-container",
			"div.software-kind-container",
			"ul.tab-nav",
			"div.documentation-navigation",
			"div.acn-header-container",
			"div.public_footerpage",
			"div.left-navigation-select",
			"div.bread-crumb",
			"div.loader",
			"select",
		},
		FlattenTabs: true,
		TabLikeClasses: []string{
			"tab-container",
			"tab-container-container",
			"tab-container-box",
			"technical-azure-selector",
			"pricing-detail-tab",
		},
		TabVocabulary: []string{
			"tab-nav",
			"tab-content",
			"tab-panel",
			"tab-container",
			"dropdown-container",
			"dropdown-box",
			"tab-items",
		},
		PanelContentTags: []string{
			"table", "div", "p", "ul", "ol", "h1", "h2", "h3", "h4", "h5", "h6",
		},
		ContainerContentTags: []string{
			"table", "p", "ul", "ol", "h1", "h2", "h3", "h4", "h5", "h6",
		},
		PruneEmptyContainers: true,
		MaxPrunePasses:       3,
		ImportantTags: []string{
			"table", "img", "input", "button", "iframe", "video", "audio",
		},
	}
}
