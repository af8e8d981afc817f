package script

// Shell variable names for the card palette. The assembler emits their
// definitions; the profile formatter and theme renderer reference them as
// ${NAME} without knowing the concrete ANSI values.
const (
	VarBlueBG    = "BLU" // work / location labels
	VarCyanBG    = "CYA" // twitter / linkedin labels
	VarRedBG     = "RED" // youtube label
	VarGreenBG   = "GRN" // website label
	VarMagentaBG = "MAG" // section headers
	VarFG        = "FGW" // bright foreground used inside labels
	VarReset     = "RST"
	VarPad       = "PAD" // single-space label padding
)

// colorDefs is the block of named constants every generated script starts
// with. Values are ANSI SGR sequences; \e is expanded by echo -e.
const colorDefs = `BLU="\e[44m"
CYA="\e[46m"
RED="\e[41m"
GRN="\e[42m"
MAG="\e[45m"
FGW="\e[1;97m"
RST="\e[0m"
PAD=" "`
