package domain

// Theme is a public CSS style record. Color and FontSize are mandatory;
// Responsive maps breakpoint names to raw CSS.
type Theme struct {
	ID string `json:"id" bson:"-"`

	// background
	Color              string `json:"color" bson:"color"`
	BackgroundColor    string `json:"backgroundColor,omitempty" bson:"background_color,omitempty"`
	BackgroundImage    string `json:"backgroundImage,omitempty" bson:"background_image,omitempty"`
	BackgroundSize     string `json:"backgroundSize,omitempty" bson:"background_size,omitempty"`
	BackgroundRepeat   string `json:"backgroundRepeat,omitempty" bson:"background_repeat,omitempty"`
	BackgroundPosition string `json:"backgroundPosition,omitempty" bson:"background_position,omitempty"`

	// typography
	FontSize       string `json:"fontSize" bson:"font_size"`
	FontFamily     string `json:"fontFamily,omitempty" bson:"font_family,omitempty"`
	FontWeight     string `json:"fontWeight,omitempty" bson:"font_weight,omitempty"`
	FontStyle      string `json:"fontStyle,omitempty" bson:"font_style,omitempty"`
	LineHeight     string `json:"lineHeight,omitempty" bson:"line_height,omitempty"`
	LetterSpacing  string `json:"letterSpacing,omitempty" bson:"letter_spacing,omitempty"`
	TextDecoration string `json:"textDecoration,omitempty" bson:"text_decoration,omitempty"`
	TextTransform  string `json:"textTransform,omitempty" bson:"text_transform,omitempty"`

	// spacing
	Margin  string `json:"margin,omitempty" bson:"margin,omitempty"`
	Padding string `json:"padding,omitempty" bson:"padding,omitempty"`

	// border
	Border       string `json:"border,omitempty" bson:"border,omitempty"`
	BorderWidth  string `json:"borderWidth,omitempty" bson:"border_width,omitempty"`
	BorderColor  string `json:"borderColor,omitempty" bson:"border_color,omitempty"`
	BorderStyle  string `json:"borderStyle,omitempty" bson:"border_style,omitempty"`
	BorderRadius string `json:"borderRadius,omitempty" bson:"border_radius,omitempty"`
	BoxShadow    string `json:"boxShadow,omitempty" bson:"box_shadow,omitempty"`

	// layout
	Display   string `json:"display,omitempty" bson:"display,omitempty"`
	Position  string `json:"position,omitempty" bson:"position,omitempty"`
	Top       string `json:"top,omitempty" bson:"top,omitempty"`
	Right     string `json:"right,omitempty" bson:"right,omitempty"`
	Bottom    string `json:"bottom,omitempty" bson:"bottom,omitempty"`
	Left      string `json:"left,omitempty" bson:"left,omitempty"`
	ZIndex    *int   `json:"zIndex,omitempty" bson:"z_index,omitempty"`
	Overflow  string `json:"overflow,omitempty" bson:"overflow,omitempty"`
	Width     string `json:"width,omitempty" bson:"width,omitempty"`
	Height    string `json:"height,omitempty" bson:"height,omitempty"`
	MinWidth  string `json:"minWidth,omitempty" bson:"min_width,omitempty"`
	MinHeight string `json:"minHeight,omitempty" bson:"min_height,omitempty"`
	MaxWidth  string `json:"maxWidth,omitempty" bson:"max_width,omitempty"`
	MaxHeight string `json:"maxHeight,omitempty" bson:"max_height,omitempty"`
	Float     string `json:"float,omitempty" bson:"float,omitempty"`
	Clear     string `json:"clear,omitempty" bson:"clear,omitempty"`

	// flex
	Flex           string `json:"flex,omitempty" bson:"flex,omitempty"`
	FlexDirection  string `json:"flexDirection,omitempty" bson:"flex_direction,omitempty"`
	FlexWrap       string `json:"flexWrap,omitempty" bson:"flex_wrap,omitempty"`
	JustifyContent string `json:"justifyContent,omitempty" bson:"justify_content,omitempty"`
	AlignItems     string `json:"alignItems,omitempty" bson:"align_items,omitempty"`
	AlignSelf      string `json:"alignSelf,omitempty" bson:"align_self,omitempty"`

	// grid
	GridTemplateColumns string `json:"gridTemplateColumns,omitempty" bson:"grid_template_columns,omitempty"`
	GridTemplateRows    string `json:"gridTemplateRows,omitempty" bson:"grid_template_rows,omitempty"`
	GridArea            string `json:"gridArea,omitempty" bson:"grid_area,omitempty"`
	GridColumn          string `json:"gridColumn,omitempty" bson:"grid_column,omitempty"`
	GridRow             string `json:"gridRow,omitempty" bson:"grid_row,omitempty"`

	// visual
	Opacity    *float64 `json:"opacity,omitempty" bson:"opacity,omitempty"`
	Cursor     string   `json:"cursor,omitempty" bson:"cursor,omitempty"`
	Transition string   `json:"transition,omitempty" bson:"transition,omitempty"`
	Transform  string   `json:"transform,omitempty" bson:"transform,omitempty"`
	OverflowX  string   `json:"overflowX,omitempty" bson:"overflow_x,omitempty"`
	OverflowY  string   `json:"overflowY,omitempty" bson:"overflow_y,omitempty"`
	Visibility string   `json:"visibility,omitempty" bson:"visibility,omitempty"`
	WhiteSpace string   `json:"whiteSpace,omitempty" bson:"white_space,omitempty"`
	WordWrap   string   `json:"wordWrap,omitempty" bson:"word_wrap,omitempty"`
	BoxSizing  string   `json:"boxSizing,omitempty" bson:"box_sizing,omitempty"`

	Responsive map[string]string `json:"responsive,omitempty" bson:"responsive,omitempty"`
}
