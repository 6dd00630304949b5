package roles

// Prior is a partial distribution of roles for a champion, in percent.
// Values need not sum to 100; missing roles are zero.
type Prior struct {
	Top     float64
	Jungle  float64
	Mid     float64
	ADC     float64
	Support float64
}

func (p Prior) weights() [5]float64 {
	return [5]float64{p.Top, p.Jungle, p.Mid, p.ADC, p.Support}
}

func (p Prior) isZero() bool {
	return p == Prior{}
}

// defaultPrior is used for unknown champions (or all-zero priors).
var defaultPrior = Prior{Top: 20, Mid: 20, ADC: 30, Support: 30}

// priors maps champion id to its observed role distribution.
var priors = map[int]Prior{
	// top laners
	266: {Top: 95, Mid: 5},                          // Aatrox
	164: {Top: 85, Jungle: 10, Mid: 5},              // Camille
	122: {Top: 95, Mid: 5},                          // Darius
	36:  {Top: 90, Jungle: 10},                      // Dr. Mundo
	114: {Top: 90, Mid: 10},                         // Fiora
	3:   {Top: 70, Mid: 20, Support: 10},            // Galio
	86:  {Top: 90, Mid: 10},                         // Garen
	150: {Top: 95, Support: 5},                      // Gnar
	79:  {Top: 50, Mid: 40, Jungle: 10},             // Gragas
	120: {Top: 30, Jungle: 70},                      // Hecarim
	420: {Top: 95, Mid: 5},                          // Illaoi
	39:  {Top: 70, Mid: 30},                         // Irelia
	126: {Top: 70, Mid: 30},                         // Jayce
	240: {Top: 90, Mid: 10},                         // Kled
	85:  {Top: 60, Mid: 40},                         // Kennen
	54:  {Top: 85, Jungle: 10, Support: 5},          // Malphite
	82:  {Top: 85, Jungle: 15},                      // Mordekaiser
	516: {Top: 85, Support: 15},                     // Ornn
	80:  {Top: 50, Mid: 30, Jungle: 15, Support: 5}, // Pantheon
	58:  {Top: 90, Mid: 10},                         // Renekton
	92:  {Top: 85, Mid: 15},                         // Riven
	68:  {Top: 80, Mid: 20},                         // Rumble
	14:  {Top: 85, Jungle: 15},                      // Sion
	27:  {Top: 85, Mid: 10, Support: 5},             // Singed
	223: {Top: 70, Support: 30},                     // Tahm Kench
	48:  {Top: 85, Jungle: 15},                      // Trundle
	23:  {Top: 90, Mid: 10},                         // Tryndamere
	6:   {Top: 95, Mid: 5},                          // Urgot
	8:   {Top: 50, Mid: 50},                         // Vladimir
	106: {Top: 60, Jungle: 40},                      // Volibear
	19:  {Top: 30, Jungle: 70},                      // Warwick
	62:  {Top: 60, Jungle: 40},                      // Wukong
	157: {Top: 40, Mid: 50, ADC: 10},                // Yasuo
	777: {Top: 40, Mid: 60},                         // Yone
	83:  {Top: 95, Jungle: 5},                       // Yorick
	875: {Top: 90, Jungle: 10},                      // Sett
	887: {Top: 85, Mid: 10, Jungle: 5},              // Gwen
	799: {Top: 80, Jungle: 15, Mid: 5},              // Ambessa
	233: {Top: 20, Jungle: 80},                      // Briar

	// junglers
	32:  {Jungle: 95, Support: 5},           // Amumu
	60:  {Jungle: 95, Top: 5},               // Elise
	28:  {Jungle: 95, Mid: 5},               // Evelynn
	9:   {Jungle: 85, Mid: 15},              // Fiddlesticks
	104: {Jungle: 90, ADC: 10},              // Graves
	121: {Jungle: 95, Mid: 5},               // Kha'Zix
	203: {Jungle: 90, ADC: 10},              // Kindred
	64:  {Jungle: 95, Top: 5},               // Lee Sin
	876: {Jungle: 95, Mid: 5},               // Lillia
	57:  {Jungle: 60, Top: 30, Support: 10}, // Maokai
	421: {Jungle: 95, Top: 5},               // Rek'Sai
	107: {Jungle: 85, Top: 15},              // Rengar
	113: {Jungle: 95, Top: 5},               // Sejuani
	102: {Jungle: 90, Top: 10},              // Shyvana
	154: {Jungle: 95, Top: 5},               // Zac
	427: {Jungle: 95, Support: 5},           // Ivern
	141: {Jungle: 95, Mid: 5},               // Kayn
	200: {Jungle: 95, Top: 5},               // Bel'Veth
	221: {ADC: 95, Mid: 5},                  // Zeri
	234: {Jungle: 85, Top: 10, Mid: 5},      // Viego
	59:  {Jungle: 90, Top: 10},              // Jarvan IV
	254: {Jungle: 95, Top: 5},               // Vi
	5:   {Jungle: 70, Top: 25, Mid: 5},      // Xin Zhao
	76:  {Jungle: 85, Mid: 15},              // Nidalee
	56:  {Jungle: 95, Mid: 5},               // Nocturne
	20:  {Jungle: 95, Top: 5},               // Nunu
	2:   {Jungle: 95, Top: 5},               // Olaf
	78:  {Jungle: 50, Top: 40, Support: 10}, // Poppy
	33:  {Jungle: 95, Top: 5},               // Rammus
	98:  {Top: 80, Jungle: 15, Support: 5},  // Shen
	35:  {Jungle: 70, Support: 30},          // Shaco
	72:  {Jungle: 85, Top: 15},              // Skarner
	77:  {Jungle: 70, Top: 30},              // Udyr
	245: {Jungle: 60, Mid: 40},              // Ekko
	131: {Jungle: 60, Mid: 40},              // Diana
	11:  {Jungle: 95, Top: 5},               // Master Yi

	// mid laners
	103: {Mid: 85, Support: 10, ADC: 5},    // Ahri
	84:  {Mid: 80, Top: 20},                // Akali
	166: {Mid: 60, Top: 30, ADC: 10},       // Akshan
	34:  {Mid: 85, ADC: 15},                // Anivia
	1:   {Mid: 70, Support: 30},            // Annie
	136: {Mid: 90, ADC: 10},                // Aurelion Sol
	268: {Mid: 95, Top: 5},                 // Azir
	63:  {Mid: 50, Support: 45, ADC: 5},    // Brand
	69:  {Mid: 80, Top: 15, ADC: 5},        // Cassiopeia
	31:  {Mid: 60, Top: 40},                // Cho'Gath
	42:  {Mid: 85, ADC: 15},                // Corki
	38:  {Mid: 95, Top: 5},                 // Kassadin
	55:  {Mid: 95, Top: 5},                 // Katarina
	10:  {Mid: 70, Top: 30},                // Kayle
	7:   {Mid: 85, Support: 15},            // LeBlanc
	127: {Mid: 90, Support: 10},            // Lissandra
	99:  {Mid: 60, Support: 40},            // Lux
	90:  {Mid: 85, ADC: 15},                // Malzahar
	61:  {Mid: 95, Support: 5},             // Orianna
	13:  {Mid: 70, Top: 30},                // Ryze
	134: {Mid: 90, Support: 10},            // Syndra
	163: {Mid: 70, Jungle: 25, Support: 5}, // Taliyah
	4:   {Mid: 85, ADC: 15},                // Twisted Fate
	112: {Mid: 95, Top: 5},                 // Viktor
	45:  {Mid: 80, ADC: 15, Support: 5},    // Veigar
	161: {Mid: 60, Support: 40},            // Vel'Koz
	101: {Mid: 70, Support: 30},            // Xerath
	142: {Mid: 80, Support: 20},            // Zoe
	115: {Mid: 60, ADC: 40},                // Ziggs
	26:  {Mid: 50, Support: 50},            // Zilean
	238: {Mid: 90, Top: 10},                // Zed
	91:  {Mid: 70, Jungle: 25, Top: 5},     // Talon
	105: {Mid: 90, Top: 10},                // Fizz
	517: {Mid: 70, Jungle: 20, Top: 10},    // Sylas
	711: {Mid: 85, Support: 15},            // Vex
	950: {Mid: 90, Top: 10},                // Naafiri
	893: {Mid: 90, Top: 10},                // Aurora
	910: {Mid: 85, Jungle: 15},             // Hwei

	// bot laners
	22:  {ADC: 90, Support: 10},          // Ashe
	51:  {ADC: 95, Mid: 5},               // Caitlyn
	119: {ADC: 95, Mid: 5},               // Draven
	81:  {ADC: 90, Mid: 10},              // Ezreal
	202: {ADC: 95, Mid: 5},               // Jhin
	222: {ADC: 95, Mid: 5},               // Jinx
	145: {ADC: 90, Mid: 10},              // Kai'Sa
	429: {ADC: 95, Top: 5},               // Kalista
	96:  {ADC: 90, Mid: 10},              // Kog'Maw
	236: {ADC: 85, Mid: 15},              // Lucian
	21:  {ADC: 85, Support: 15},          // Miss Fortune
	15:  {ADC: 95, Mid: 5},               // Sivir
	18:  {ADC: 85, Top: 10, Mid: 5},      // Tristana
	29:  {ADC: 85, Top: 10, Jungle: 5},   // Twitch
	67:  {ADC: 85, Top: 15},              // Vayne
	110: {ADC: 85, Mid: 15},              // Varus
	498: {ADC: 95, Mid: 5},               // Xayah
	360: {ADC: 90, Mid: 10},              // Samira
	147: {ADC: 50, Support: 50},          // Seraphine
	895: {ADC: 95, Mid: 5},               // Nilah
	901: {ADC: 90, Mid: 10},              // Smolder
	804: {ADC: 90, Mid: 10},              // Yunara
	17:  {ADC: 40, Top: 40, Support: 20}, // Teemo
	133: {ADC: 30, Top: 60, Mid: 10},     // Quinn
	43:  {Support: 70, Mid: 30},          // Karma

	// supports
	12:  {Support: 95, Top: 5},             // Alistar
	432: {Support: 95, Mid: 5},             // Bard
	53:  {Support: 95, Top: 5},             // Blitzcrank
	201: {Support: 95, Top: 5},             // Braum
	40:  {Support: 95, Mid: 5},             // Janna
	89:  {Support: 95, Top: 5},             // Leona
	117: {Support: 85, Mid: 15},            // Lulu
	25:  {Support: 80, Mid: 20},            // Morgana
	267: {Support: 95, Mid: 5},             // Nami
	111: {Support: 85, Top: 10, Jungle: 5}, // Nautilus
	497: {Support: 95, Mid: 5},             // Rakan
	37:  {Support: 95, Mid: 5},             // Sona
	16:  {Support: 95, Mid: 5},             // Soraka
	44:  {Support: 95, Top: 5},             // Taric
	412: {Support: 95, Top: 5},             // Thresh
	143: {Support: 80, Mid: 20},            // Zyra
	350: {Support: 95, Mid: 5},             // Yuumi
	526: {Support: 95, Jungle: 5},          // Rell
	555: {Support: 85, Mid: 15},            // Pyke
	235: {Support: 70, ADC: 30},            // Senna
	50:  {Support: 50, Mid: 30, ADC: 20},   // Swain
	518: {Support: 70, Mid: 30},            // Neeko
	888: {Support: 95, Mid: 5},             // Renata Glasc
	902: {Support: 95, Mid: 5},             // Milio
}
