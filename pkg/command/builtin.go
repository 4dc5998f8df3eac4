package command

// builtinAliases are extra spellings that are not prefixes of the command they name.
//
//nolint:gochecknoglobals // Read-only lookup table.
var builtinAliases = [][2]string{
	{"t", "copy"},
	{"k", "mark"},
	{"x", "exit"},
	{"xit", "exit"},
}

type mapCommand struct {
	name, abbrev string
	bang, unmap  bool
}

//nolint:gochecknoglobals // Read-only lookup table.
var mapCommands = []mapCommand{
	{name: "map", abbrev: "map", bang: true},
	{name: "nmap", abbrev: "nm"},
	{name: "vmap", abbrev: "vm"},
	{name: "xmap", abbrev: "xm"},
	{name: "omap", abbrev: "om"},
	{name: "imap", abbrev: "im"},
	{name: "cmap", abbrev: "cm"},
	{name: "noremap", abbrev: "no", bang: true},
	{name: "nnoremap", abbrev: "nn"},
	{name: "vnoremap", abbrev: "vn"},
	{name: "xnoremap", abbrev: "xn"},
	{name: "onoremap", abbrev: "ono"},
	{name: "inoremap", abbrev: "ino"},
	{name: "cnoremap", abbrev: "cno"},
	{name: "unmap", abbrev: "unm", bang: true, unmap: true},
	{name: "nunmap", abbrev: "nun", unmap: true},
	{name: "vunmap", abbrev: "vu", unmap: true},
	{name: "iunmap", abbrev: "iu", unmap: true},
}

// builtinSpecs returns the built-in commands in registration order.
func builtinSpecs() []Spec {
	specs := []Spec{
		// Line editing.
		{Name: "delete", Abbrev: "d", Range: true, Default: DefaultCurrent, Args: scanRegisterCount,
			Description: "Delete lines into a register"},
		{Name: "yank", Abbrev: "y", Range: true, Default: DefaultCurrent, Args: scanRegisterCount,
			Description: "Yank lines into a register"},
		{Name: "put", Abbrev: "pu", Bang: true, Range: true, Default: DefaultCurrent, Args: scanRegister,
			Description: "Put register text after the line, before it with !"},
		{Name: "copy", Abbrev: "co", Range: true, Default: DefaultCurrent, Args: scanDestination,
			Description: "Copy lines below the destination address"},
		{Name: "move", Abbrev: "m", Range: true, Default: DefaultCurrent, Args: scanDestination,
			Description: "Move lines below the destination address"},
		{Name: "join", Abbrev: "j", Bang: true, Range: true, Default: DefaultCurrent, Args: scanCountFlags,
			Description: "Join lines, without inserting blanks with !"},
		{Name: ">", Range: true, Default: DefaultCurrent, Args: scanShift,
			Description: "Shift lines right"},
		{Name: "<", Range: true, Default: DefaultCurrent, Args: scanShift,
			Description: "Shift lines left"},
		{Name: "substitute", Abbrev: "s", Range: true, Default: DefaultCurrent, Args: scanSubstitute,
			Description: "Replace pattern matches"},
		{Name: "global", Abbrev: "g", Bang: true, Range: true, Default: DefaultWhole, Args: scanGlobal,
			Description: "Run a command on matching lines, non-matching with !"},
		{Name: "vglobal", Abbrev: "v", Range: true, Default: DefaultWhole, Args: scanGlobal,
			Description: "Run a command on non-matching lines"},
		{Name: "sort", Abbrev: "sor", Bang: true, Range: true, Default: DefaultWhole, Args: scanSort,
			Description: "Sort lines, in reverse with !"},
		{Name: "normal", Abbrev: "norm", Bang: true, Range: true, Args: scanText,
			Description: "Execute normal-mode keys"},

		// Display.
		{Name: "print", Abbrev: "p", Range: true, Default: DefaultCurrent, Args: scanCountFlags,
			Description: "Print lines"},
		{Name: "list", Abbrev: "l", Range: true, Default: DefaultCurrent, Args: scanCountFlags,
			Description: "Print lines with unprintable characters shown"},
		{Name: "number", Abbrev: "nu", Range: true, Default: DefaultCurrent, Args: scanCountFlags,
			Description: "Print lines with their line numbers"},
		{Name: "mark", Abbrev: "ma", Range: true, Default: DefaultCurrent, Args: scanMark,
			Description: "Set a mark at the line"},
		{Name: "nohlsearch", Abbrev: "noh", Args: scanNone,
			Description: "Stop highlighting search matches"},

		// Files.
		{Name: "write", Abbrev: "w", Bang: true, Range: true, Default: DefaultWhole, Args: scanText,
			Description: "Write lines to a file"},
		{Name: "wq", Bang: true, Range: true, Default: DefaultWhole, Args: scanText,
			Description: "Write and close the window"},
		{Name: "wqall", Abbrev: "wqa", Bang: true, Args: scanNone,
			Description: "Write all changed buffers and quit"},
		{Name: "update", Abbrev: "up", Bang: true, Range: true, Default: DefaultWhole, Args: scanText,
			Description: "Write when the buffer is modified"},
		{Name: "exit", Abbrev: "exi", Bang: true, Range: true, Default: DefaultWhole, Args: scanText,
			Description: "Write when modified and close the window"},
		{Name: "read", Abbrev: "r", Range: true, Default: DefaultCurrent, Args: scanText,
			Description: "Insert a file below the line"},
		{Name: "edit", Abbrev: "e", Bang: true, Args: scanText,
			Description: "Edit a file"},

		// History.
		{Name: "undo", Abbrev: "u", Args: scanNone, Description: "Undo one change"},
		{Name: "redo", Abbrev: "red", Args: scanNone, Description: "Redo one change"},

		// Windows and tabs.
		{Name: "quit", Abbrev: "q", Bang: true, Args: scanNone, Description: "Close the window"},
		{Name: "qall", Abbrev: "qa", Bang: true, Args: scanNone, Description: "Quit the editor"},
		{Name: "close", Abbrev: "clo", Bang: true, Args: scanNone, Description: "Close the window"},
		{Name: "only", Abbrev: "on", Bang: true, Args: scanNone, Description: "Close all other windows"},
		{Name: "split", Abbrev: "sp", Args: scanText, Description: "Split the window"},
		{Name: "vsplit", Abbrev: "vs", Args: scanText, Description: "Split the window vertically"},
		{Name: "tabnext", Abbrev: "tabn", Args: scanNone, Description: "Go to the next tab page"},
		{Name: "tabprevious", Abbrev: "tabp", Args: scanNone, Description: "Go to the previous tab page"},
		{Name: "tabclose", Abbrev: "tabc", Bang: true, Args: scanNone, Description: "Close the tab page"},
		{Name: "tabonly", Abbrev: "tabo", Bang: true, Args: scanNone, Description: "Close all other tab pages"},
	}

	for _, mc := range mapCommands {
		spec := Spec{Name: mc.name, Abbrev: mc.abbrev, Bang: mc.bang, Args: scanMap,
			Description: "Define a key mapping"}
		if mc.unmap {
			spec.Args = scanUnmap
			spec.Description = "Remove a key mapping"
		}
		specs = append(specs, spec)
	}
	return specs
}

func registerBuiltins(table *Table) {
	for _, spec := range builtinSpecs() {
		table.MustRegister(spec)
	}
	for _, alias := range builtinAliases {
		if err := table.RegisterAlias(alias[0], alias[1]); err != nil {
			panic(err)
		}
	}
}
