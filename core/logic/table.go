package logic

// Keys whose membership decides Instruction classification.
var (
	conditionalKeys = map[string]struct{}{
		"CMP": {}, "EQU": {}, "GEQ": {}, "GRT": {}, "LEQ": {}, "LES": {},
		"LIM": {}, "MEQ": {}, "NEQ": {}, "XIC": {}, "XIO": {},
	}
	routineKeys = map[string]struct{}{
		"JSR": {}, "JXR": {}, "SFR": {}, "SFP": {}, "FOR": {},
	}
	taskKeys = map[string]struct{}{
		"EVENT": {},
	}
)

type tableRow struct {
	key         string
	description string
}

// builtinTable lists every built-in instruction key.
var builtinTable = []tableRow{
	// bit
	{"XIC", "Examine If Closed"},
	{"XIO", "Examine If Open"},
	{"OTE", "Output Energize"},
	{"OTL", "Output Latch"},
	{"OTU", "Output Unlatch"},
	{"ONS", "One Shot"},
	{"OSR", "One Shot Rising"},
	{"OSF", "One Shot Falling"},
	{"OSRI", "One Shot Rising with Input"},
	{"OSFI", "One Shot Falling with Input"},

	// timer and counter
	{"TON", "Timer On Delay"},
	{"TOF", "Timer Off Delay"},
	{"RTO", "Retentive Timer On"},
	{"TONR", "Timer On Delay with Reset"},
	{"TOFR", "Timer Off Delay with Reset"},
	{"RTOR", "Retentive Timer On with Reset"},
	{"CTU", "Count Up"},
	{"CTD", "Count Down"},
	{"CTUD", "Count Up/Down"},
	{"RES", "Reset"},

	// compare
	{"CMP", "Compare"},
	{"EQU", "Equal To"},
	{"GEQ", "Greater Than or Equal To"},
	{"GRT", "Greater Than"},
	{"LEQ", "Less Than or Equal To"},
	{"LES", "Less Than"},
	{"LIM", "Limit"},
	{"MEQ", "Mask Equal To"},
	{"NEQ", "Not Equal To"},

	// compute and math
	{"CPT", "Compute"},
	{"ADD", "Add"},
	{"SUB", "Subtract"},
	{"MUL", "Multiply"},
	{"DIV", "Divide"},
	{"MOD", "Modulo"},
	{"SQR", "Square Root"},
	{"SQRT", "Square Root"},
	{"NEG", "Negate"},
	{"ABS", "Absolute Value"},
	{"XPY", "X to the Power of Y"},

	// trigonometric and logarithmic
	{"SIN", "Sine"},
	{"COS", "Cosine"},
	{"TAN", "Tangent"},
	{"ASN", "Arc Sine"},
	{"ACS", "Arc Cosine"},
	{"ATN", "Arc Tangent"},
	{"LN", "Natural Log"},
	{"LOG", "Log Base 10"},

	// move and logical
	{"MOV", "Move"},
	{"MVM", "Masked Move"},
	{"MVMT", "Masked Move with Target"},
	{"BTD", "Bit Field Distribute"},
	{"BTDT", "Bit Field Distribute with Target"},
	{"CLR", "Clear"},
	{"SWPB", "Swap Byte"},
	{"AND", "Bitwise AND"},
	{"OR", "Bitwise OR"},
	{"XOR", "Bitwise Exclusive OR"},
	{"NOT", "Bitwise NOT"},
	{"BAND", "Boolean AND"},
	{"BOR", "Boolean OR"},
	{"BXOR", "Boolean Exclusive OR"},
	{"BNOT", "Boolean NOT"},

	// conversion
	{"TOD", "Convert to BCD"},
	{"FRD", "Convert to Integer"},
	{"DEG", "Degrees"},
	{"RAD", "Radians"},
	{"TRN", "Truncate"},

	// array and file
	{"COP", "Copy File"},
	{"CPS", "Synchronous Copy File"},
	{"FLL", "File Fill"},
	{"FAL", "File Arithmetic and Logic"},
	{"FSC", "File Search and Compare"},
	{"AVE", "File Average"},
	{"SRT", "File Sort"},
	{"STD", "File Standard Deviation"},
	{"SIZE", "Size In Elements"},
	{"DDT", "Diagnostic Detect"},
	{"FBC", "File Bit Comparison"},
	{"DTR", "Data Transitional"},

	// shift and sequencer
	{"BSL", "Bit Shift Left"},
	{"BSR", "Bit Shift Right"},
	{"FFL", "FIFO Load"},
	{"FFU", "FIFO Unload"},
	{"LFL", "LIFO Load"},
	{"LFU", "LIFO Unload"},
	{"SQI", "Sequencer Input"},
	{"SQO", "Sequencer Output"},
	{"SQL", "Sequencer Load"},

	// program control
	{"JMP", "Jump to Label"},
	{"LBL", "Label"},
	{"JSR", "Jump to Subroutine"},
	{"SBR", "Subroutine"},
	{"RET", "Return"},
	{"JXR", "Jump to External Routine"},
	{"TND", "Temporary End"},
	{"MCR", "Master Control Reset"},
	{"UID", "User Interrupt Disable"},
	{"UIE", "User Interrupt Enable"},
	{"AFI", "Always False"},
	{"NOP", "No Operation"},
	{"EOT", "End of Transition"},
	{"SFP", "SFC Pause"},
	{"SFR", "SFC Reset"},
	{"EVENT", "Trigger Event Task"},
	{"FOR", "For Loop"},
	{"BRK", "Break"},

	// input/output
	{"MSG", "Message"},
	{"GSV", "Get System Value"},
	{"SSV", "Set System Value"},
	{"IOT", "Immediate Output"},

	// alarm
	{"ALMD", "Digital Alarm"},
	{"ALMA", "Analog Alarm"},

	// process
	{"PID", "Proportional Integral Derivative"},

	// ASCII serial port
	{"ABL", "ASCII Test for Buffer Line"},
	{"ACB", "ASCII Chars in Buffer"},
	{"ACL", "ASCII Clear Buffer"},
	{"AHL", "ASCII Handshake Lines"},
	{"ARD", "ASCII Read"},
	{"ARL", "ASCII Read Line"},
	{"AWA", "ASCII Write Append"},
	{"AWT", "ASCII Write"},

	// ASCII string
	{"CONCAT", "String Concatenate"},
	{"DELETE", "String Delete"},
	{"FIND", "Find String"},
	{"INSERT", "Insert String"},
	{"MID", "Middle String"},
	{"STOD", "String To DINT"},
	{"STOR", "String To REAL"},
	{"DTOS", "DINT to String"},
	{"RTOS", "REAL to String"},
	{"UPPER", "Upper Case"},
	{"LOWER", "Lower Case"},

	// motion state
	{"MSO", "Motion Servo On"},
	{"MSF", "Motion Servo Off"},
	{"MASD", "Motion Axis Shutdown"},
	{"MASR", "Motion Axis Shutdown Reset"},
	{"MDO", "Motion Direct Drive On"},
	{"MDF", "Motion Direct Drive Off"},
	{"MAFR", "Motion Axis Fault Reset"},

	// motion move
	{"MAS", "Motion Axis Stop"},
	{"MAH", "Motion Axis Home"},
	{"MAJ", "Motion Axis Jog"},
	{"MAM", "Motion Axis Move"},
	{"MAG", "Motion Axis Gear"},
	{"MCD", "Motion Change Dynamics"},
	{"MRP", "Motion Redefine Position"},
	{"MCCP", "Motion Calculate Cam Profile"},
	{"MCSV", "Motion Calculate Slave Values"},
	{"MAPC", "Motion Axis Position Cam"},
	{"MATC", "Motion Axis Time Cam"},
	{"MDAC", "Motion Master Driven Axis Control"},

	// motion group
	{"MGS", "Motion Group Stop"},
	{"MGSD", "Motion Group Shutdown"},
	{"MGSR", "Motion Group Shutdown Reset"},
	{"MGSP", "Motion Group Strobe Position"},

	// motion event
	{"MAW", "Motion Arm Watch"},
	{"MDW", "Motion Disarm Watch"},
	{"MAR", "Motion Arm Registration"},
	{"MDR", "Motion Disarm Registration"},
	{"MAOC", "Motion Arm Output Cam"},
	{"MDOC", "Motion Disarm Output Cam"},

	// motion configuration
	{"MAAT", "Motion Apply Axis Tuning"},
	{"MRAT", "Motion Run Axis Tuning"},
	{"MAHD", "Motion Apply Hookup Diagnostics"},
	{"MRHD", "Motion Run Hookup Diagnostics"},

	// multi-axis coordinated motion
	{"MCS", "Motion Coordinated Stop"},
	{"MCLM", "Motion Coordinated Linear Move"},
	{"MCCM", "Motion Coordinated Circular Move"},
	{"MCCD", "Motion Coordinated Change Dynamics"},
	{"MCT", "Motion Coordinated Transform"},
	{"MCTP", "Motion Calculate Transform Position"},
	{"MCSD", "Motion Coordinated Shutdown"},
	{"MCSR", "Motion Coordinated Shutdown Reset"},
	{"MDCC", "Motion Master Driven Coordinated Control"},

	// safety
	{"ESTOP", "Emergency Stop"},
	{"DCS", "Dual Channel Input Stop"},
	{"DCST", "Dual Channel Input Stop with Test"},
	{"DCSTL", "Dual Channel Input Stop with Test and Lock"},
	{"DCM", "Dual Channel Input Monitor"},
	{"SMAT", "Safety Mat"},
	{"TSAM", "Two Sensor Asymmetrical Muting"},
	{"TSSM", "Two Sensor Symmetrical Muting"},
	{"FSBM", "Four Sensor Bidirectional Muting"},
	{"THRS", "Two-Hand Run Station"},
	{"CROUT", "Configurable Redundant Output"},
	{"LC", "Light Curtain"},
	{"FPMS", "Five Position Mode Selector"},
	{"RIN", "Redundant Input"},
	{"ROUT", "Redundant Output"},
	{"DIN", "Dual Channel Input"},
	{"EPMS", "Eight Position Mode Selector"},
	{"SMATC", "Safety Mat with Control"},
}
