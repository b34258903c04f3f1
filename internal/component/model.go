package component

import "fmt"

// CreateComponentModel returns every component kind, in a fixed order.
//
// It is deterministic and pure. Invalid references panic: they are errors in
// this file, not conditions a caller can recover from.
func CreateComponentModel() []Component {
	textPart := Component{Kind: KindTextPart, InternalName: "text_part", Name: "TextPart"}

	text := func() Children { return Children{Kind: ChildrenString, TextPart: textPart.InternalName} }

	action := standard("action", "Action",
		props(
			optional("id", stringType()),
			required("label", stringType()),
			event("onAction"),
		),
		none(),
	)
	actionPanelSection := standard("action_panel_section", "ActionPanelSection",
		props(optional("title", stringType())),
		members(member("action", action)),
	)
	actionPanel := standard("action_panel", "ActionPanel",
		props(optional("title", stringType())),
		members(
			member("action", action),
			member("section", actionPanelSection),
		),
	)

	metadataTagItem := standard("metadata_tag_item", "MetadataTagItem",
		props(event("onClick")),
		text(),
	)
	metadataTagList := standard("metadata_tag_list", "MetadataTagList",
		props(required("label", stringType())),
		members(member("item", metadataTagItem)),
	)
	metadataSeparator := standard("metadata_separator", "MetadataSeparator", nil, none())
	metadataValue := standard("metadata_value", "MetadataValue",
		props(required("label", stringType())),
		text(),
	)
	metadataIcon := standard("metadata_icon", "MetadataIcon",
		props(
			required("icon", stringType()),
			required("label", stringType()),
		),
		none(),
	)
	metadataLink := standard("metadata_link", "MetadataLink",
		props(
			required("label", stringType()),
			required("href", stringType()),
		),
		text(),
	)
	metadata := standard("metadata", "Metadata", nil,
		members(
			member("tagList", metadataTagList),
			member("value", metadataValue),
			member("separator", metadataSeparator),
			member("icon", metadataIcon),
			member("link", metadataLink),
		),
	)

	link := standard("link", "Link",
		props(required("href", stringType())),
		text(),
	)
	image := standard("image", "Image",
		props(required("source", imageSourceType())),
		none(),
	)
	var headings []Component
	for level := 1; level <= 6; level++ {
		headings = append(headings, standard(fmt.Sprintf("h%d", level), fmt.Sprintf("H%d", level), nil, text()))
	}
	horizontalBreak := standard("horizontal_break", "HorizontalBreak", nil, none())
	codeBlock := standard("code_block", "CodeBlock", nil, text())
	paragraph := standard("paragraph", "Paragraph", nil,
		stringOrMembers(textPart, member("link", link)),
	)

	contentMembers := []Member{
		member("paragraph", paragraph),
		member("link", link),
		member("image", image),
	}
	for _, h := range headings {
		contentMembers = append(contentMembers, member(lowerFirst(h.Name), h))
	}
	contentMembers = append(contentMembers,
		member("horizontalBreak", horizontalBreak),
		member("codeBlock", codeBlock),
	)
	content := standard("content", "Content", nil, members(contentMembers...))

	detail := standard("detail", "Detail",
		props(
			optional("isLoading", booleanType()),
			optional("actions", componentType(actionPanel)),
			optional("metadata", componentType(metadata)),
			optional("content", componentType(content)),
		),
		members(
			member("actionPanel", actionPanel),
			member("metadata", metadata),
			member("content", content),
		),
	)

	textField := standard("text_field", "TextField",
		props(
			optional("label", stringType()),
			optional("value", stringType()),
			event("onChange", optional("value", stringType())),
		),
		none(),
	)
	passwordField := standard("password_field", "PasswordField",
		props(
			optional("label", stringType()),
			optional("value", stringType()),
			event("onChange", optional("value", stringType())),
		),
		none(),
	)
	checkbox := standard("checkbox", "Checkbox",
		props(
			optional("label", stringType()),
			optional("title", stringType()),
			optional("value", booleanType()),
			event("onChange", required("value", booleanType())),
		),
		none(),
	)
	datePicker := standard("date_picker", "DatePicker",
		props(
			optional("label", stringType()),
			optional("value", stringType()),
			event("onChange", optional("value", stringType())),
		),
		none(),
	)
	selectItem := standard("select_item", "SelectItem",
		props(required("value", stringType())),
		text(),
	)
	selectInput := standard("select", "Select",
		props(
			optional("label", stringType()),
			optional("value", stringType()),
			event("onChange", optional("value", stringType())),
		),
		members(member("item", selectItem)),
	)
	separator := standard("separator", "Separator", nil, none())
	form := standard("form", "Form",
		props(
			optional("isLoading", booleanType()),
			optional("actions", componentType(actionPanel)),
		),
		members(
			member("actionPanel", actionPanel),
			member("textField", textField),
			member("passwordField", passwordField),
			member("checkbox", checkbox),
			member("datePicker", datePicker),
			member("select", selectInput),
			member("separator", separator),
		),
	)

	inlineSeparator := standard("inline_separator", "InlineSeparator",
		props(optional("icon", stringType())),
		none(),
	)
	inline := standard("inline", "Inline",
		props(optional("actions", componentType(actionPanel))),
		members(
			member("actionPanel", actionPanel),
			member("content", content),
			member("separator", inlineSeparator),
		),
	)

	emptyView := standard("empty_view", "EmptyView",
		props(
			required("title", stringType()),
			optional("description", stringType()),
			optional("image", imageSourceType()),
		),
		none(),
	)
	searchBar := standard("search_bar", "SearchBar",
		props(
			optional("value", stringType()),
			optional("placeholder", stringType()),
			event("onChange", optional("value", stringType())),
		),
		none(),
	)

	listItem := standard("list_item", "ListItem",
		props(
			optional("id", stringType()),
			required("title", stringType()),
			optional("subtitle", stringType()),
			optional("icon", imageSourceType()),
			optional("keywords", arrayType(stringType())),
			event("onClick"),
		),
		none(),
	)
	listSection := standard("list_section", "ListSection",
		props(
			required("title", stringType()),
			optional("subtitle", stringType()),
		),
		members(member("item", listItem)),
	)
	list := standard("list", "List",
		props(
			optional("isLoading", booleanType()),
			optional("actions", componentType(actionPanel)),
			optional("detail", componentType(detail)),
		),
		members(
			member("actionPanel", actionPanel),
			member("item", listItem),
			member("section", listSection),
			member("searchBar", searchBar),
			member("emptyView", emptyView),
			member("detail", detail),
		),
	)

	gridItem := standard("grid_item", "GridItem",
		props(
			optional("id", stringType()),
			optional("title", stringType()),
			optional("subtitle", stringType()),
			event("onClick"),
		),
		members(member("content", content)),
	)
	gridSection := standard("grid_section", "GridSection",
		props(
			required("title", stringType()),
			optional("subtitle", stringType()),
			optional("columns", numberType()),
		),
		members(member("item", gridItem)),
	)
	grid := standard("grid", "Grid",
		props(
			optional("isLoading", booleanType()),
			optional("columns", numberType()),
			optional("actions", componentType(actionPanel)),
		),
		members(
			member("actionPanel", actionPanel),
			member("item", gridItem),
			member("section", gridSection),
			member("searchBar", searchBar),
			member("emptyView", emptyView),
		),
	)

	root := rootOf("root", detail, form, inline, list, grid)

	components := []Component{
		textPart,
		action, actionPanelSection, actionPanel,
		metadataTagItem, metadataTagList, metadataSeparator, metadataValue, metadataIcon, metadataLink, metadata,
		link, image,
	}
	components = append(components, headings...)
	components = append(components,
		horizontalBreak, codeBlock, paragraph, content,
		detail,
		textField, passwordField, checkbox, datePicker, selectItem, selectInput, separator, form,
		inlineSeparator, inline,
		emptyView, searchBar,
		listItem, listSection, list,
		gridItem, gridSection, grid,
		root,
	)

	checkModel(components)
	return components
}

func standard(internalName, name string, props []Property, children Children) Component {
	return Component{
		Kind:         KindStandard,
		InternalName: internalName,
		Name:         name,
		Props:        props,
		Children:     children,
	}
}

func rootOf(internalName string, children ...Component) Component {
	c := Component{Kind: KindRoot, InternalName: internalName, Name: "Root"}
	for _, child := range children {
		if child.Kind != KindStandard {
			panic(fmt.Sprintf("component model: root child %s is not a standard component", child.Name))
		}
		c.RootChildren = append(c.RootChildren, child.InternalName)
	}
	return c
}

func props(p ...Property) []Property { return p }

func required(name string, t PropertyType) Property {
	return Property{Name: name, Type: t}
}

func optional(name string, t PropertyType) Property {
	return Property{Name: name, Optional: true, Type: t}
}

func event(name string, args ...Property) Property {
	return Property{Name: name, Type: PropertyType{Kind: PropFunction, Arguments: args}}
}

func stringType() PropertyType      { return PropertyType{Kind: PropString} }
func numberType() PropertyType      { return PropertyType{Kind: PropNumber} }
func booleanType() PropertyType     { return PropertyType{Kind: PropBoolean} }
func imageSourceType() PropertyType { return PropertyType{Kind: PropImageSource} }

func arrayType(nested PropertyType) PropertyType {
	if nested.Kind == PropFunction || nested.Kind == PropComponent {
		panic(fmt.Sprintf("component model: array cannot nest %s", nested.Kind))
	}
	return PropertyType{Kind: PropArray, Nested: &nested}
}

func componentType(c Component) PropertyType {
	if c.Kind != KindStandard {
		panic(fmt.Sprintf("component model: property cannot reference %s component %s", c.Kind, c.Name))
	}
	return PropertyType{Kind: PropComponent, Reference: c.InternalName}
}

func member(name string, c Component) Member {
	if c.Kind != KindStandard {
		panic(fmt.Sprintf("component model: member %q cannot reference %s component %s", name, c.Kind, c.Name))
	}
	return Member{Name: name, Component: c.InternalName}
}

func none() Children { return Children{Kind: ChildrenNone} }

func members(m ...Member) Children {
	return Children{Kind: ChildrenMembers, Members: m}
}

func stringOrMembers(textPart Component, m ...Member) Children {
	return Children{Kind: ChildrenStringOrMembers, Members: m, TextPart: textPart.InternalName}
}

func lowerFirst(s string) string {
	if s == "" {
		return s
	}
	return string(s[0]|0x20) + s[1:]
}

// checkModel enforces the cross-component invariants.
func checkModel(components []Component) {
	byName := make(map[string]Kind, len(components))
	for _, c := range components {
		if _, dup := byName[c.InternalName]; dup {
			panic(fmt.Sprintf("component model: duplicate internal name %q", c.InternalName))
		}
		byName[c.InternalName] = c.Kind
	}

	mustBeStandard := func(owner, ref string) {
		kind, ok := byName[ref]
		if !ok {
			panic(fmt.Sprintf("component model: %s references unknown component %q", owner, ref))
		}
		if kind != KindStandard {
			panic(fmt.Sprintf("component model: %s references %s component %q", owner, kind, ref))
		}
	}

	for _, c := range components {
		for _, m := range c.Children.Members {
			mustBeStandard(c.Name, m.Component)
		}
		if c.Children.TextPart != "" && byName[c.Children.TextPart] != KindTextPart {
			panic(fmt.Sprintf("component model: %s text part %q is not a text part", c.Name, c.Children.TextPart))
		}
		for _, r := range c.RootChildren {
			mustBeStandard(c.Name, r)
		}
		for _, p := range c.Props {
			if p.Type.Kind == PropComponent {
				mustBeStandard(c.Name+"."+p.Name, p.Type.Reference)
			}
		}
	}
}
