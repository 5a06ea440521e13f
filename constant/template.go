package constant

// BackendGlobal is the Lua global a custom backend script must define.
const BackendGlobal = "Backend"

// CustomBackendExtension is the file extension of custom backend scripts.
const CustomBackendExtension = ".lua"

// BackendTemplate is a Go text/template for scaffolding new Lua backend files.
const BackendTemplate = `{{ $divider := repeat "-" (plus (max (len .URL) (len .Name) (len .Author) 3) 12) }}{{ $divider }}
-- @name    {{ .Name }}
-- @url     {{ .URL }}
-- @author  {{ .Author }}
-- @license MIT
{{ $divider }}


---@alias family "direct"|"peek"|"peek-artist"
---@alias progress "aria"|"style"|"transform"


{{ .Global }} = {
	url = "{{ .URL }}",

	-- direct: clicking next yields the next track, confirmed by a title change.
	-- peek: clicking next starts the next track; it is captured, rewound and paused.
	-- peek-artist: like peek, but the artist is reported too.
	family = "{{ .Family }}",

	-- aria: aria-valuenow / aria-valuemax on the progress element.
	-- style: an inline percentage style property (see style_property).
	-- transform: a scaleX / scale / matrix transform.
	progress = "aria",
	style_property = "left",

	selectors = {
		title = "",
		artist = "",
		play = "",
		pause = "",
		next = "",
		previous = "",
		start_playlist = "",
		progress = "",
	},
}

-- ex: ts=4 sw=4 et filetype=lua
`
