package resolver

import "fmt"

// ナラティブテンプレート
// コアはテンプレートIDと束縛値だけを返し、本文の描画は表示層が行う
// {user} と {amount} は表示層が束縛値で置換するプレースホルダ

var workTemplates = []string{
	"{user} has worked as a cashier and earned {amount}",
	"{user} delivered pizzas and made {amount}",
	"{user} mowed lawns in the neighborhood and collected {amount}",
	"{user} walked dogs for busy pet owners and received {amount}",
	"{user} worked a shift at the local factory and earned {amount}",
	"{user} sold handmade crafts online and pocketed {amount}",
	"{user} did some freelance writing and got paid {amount}",
	"{user} helped out at a car wash and made {amount}",
	"{user} worked as a street performer and collected {amount}",
	"{user} completed online surveys and earned {amount}",
	"{user} worked overtime at the office and received {amount}",
	"{user} offered tech support and was paid {amount}",
	"{user} taught an online class and made {amount}",
	"{user} worked as a virtual assistant and earned {amount}",
	"{user} did some gardening work and collected {amount}",
}

var crimeSuccessTemplates = []string{
	"{user} pulled off a daring heist and got away with {amount}",
	"{user} hacked into a digital vault and transferred {amount}",
	"{user} organized a complex scheme and pocketed {amount}",
	"{user} snuck into a high-security area and snagged {amount}",
	"{user} conducted a risky operation and secured {amount}",
	"{user} executed a cunning plan and acquired {amount}",
	"{user} orchestrated a clever con and walked away with {amount}",
	"{user} infiltrated a secret facility and escaped with {amount}",
	"{user} cracked a supposedly unbreakable safe and obtained {amount}",
	"{user} conducted some shady business and earned {amount}",
	"{user} engaged in some questionable activities and gained {amount}",
	"{user} took a walk on the wild side and came back with {amount}",
	"{user} bent the rules of society and profited {amount}",
	"{user} lived dangerously for a day and collected {amount}",
	"{user} took a big risk and it paid off with {amount}",
}

var crimeCaughtTemplates = []string{
	"{user} got caught red-handed and had to pay a fine of {amount}",
	"{user}'s plan backfired, resulting in a penalty of {amount}",
	"{user} tripped the alarm and lost {amount}",
	"{user}'s scheme unraveled, costing them {amount}",
	"{user} was outsmarted by security and fined {amount}",
	"{user}'s luck ran out, and they had to forfeit {amount}",
	"{user} got busted and had to cough up {amount}",
	"{user}'s criminal career hit a snag, losing them {amount}",
	"{user} faced the consequences and paid {amount}",
	"{user}'s risky venture failed, costing them {amount}",
	"{user} couldn't talk their way out and lost {amount}",
	"{user}'s master plan fell apart, resulting in a loss of {amount}",
	"{user} got a taste of justice and had to pay {amount}",
	"{user}'s crime spree came to an abrupt end, costing {amount}",
	"{user} learned crime doesn't pay and lost {amount}",
}

var dailyTemplates = []string{
	"{user} claimed their daily allowance of {amount}",
	"{user} checked in and received {amount}",
	"{user} stopped by for their daily reward of {amount}",
	"{user} collected today's bonus of {amount}",
	"{user} showed up again and pocketed {amount}",
}

var robSuccessTemplates = []string{
	"{user} ambushed {target} and ran off with {amount}",
	"{user} picked {target}'s pocket and got {amount}",
	"{user} raided {target}'s stash and grabbed {amount}",
	"{user} caught {target} off guard and took {amount}",
	"{user} outwitted {target} and made off with {amount}",
}

var robCaughtTemplates = []string{
	"{user} got caught trying to rob {target} and paid a fine of {amount}",
	"{user} was spotted by {target} and fined {amount}",
	"{user} fumbled the robbery of {target} and lost {amount}",
	"{user} was chased off by {target} and dropped {amount}",
	"{user} failed to rob {target} and forfeited {amount}",
}

var gambleTemplates = map[string]string{
	"gamble_win":  "{user} guessed right and wins {amount}",
	"gamble_lose": "{user} guessed wrong and the house takes {amount}",
}

var rpsTemplates = map[string]string{
	"rps_win":  "{user} wins! {user} chose {choice}, the bot chose {bot_choice}",
	"rps_lose": "The bot wins! {user} chose {choice}, the bot chose {bot_choice}",
	"rps_tie":  "It's a tie! {user} and the bot both chose {choice}",
}

var balanceTemplate = "{user} has {amount}"

var templateTexts = map[string]string{}

func init() {
	registerTemplates("work", workTemplates)
	registerTemplates("crime_success", crimeSuccessTemplates)
	registerTemplates("crime_caught", crimeCaughtTemplates)
	registerTemplates("daily", dailyTemplates)
	registerTemplates("rob_success", robSuccessTemplates)
	registerTemplates("rob_caught", robCaughtTemplates)
	for id, text := range gambleTemplates {
		templateTexts[id] = text
	}
	for id, text := range rpsTemplates {
		templateTexts[id] = text
	}
	templateTexts["balance"] = balanceTemplate
}

// registerTemplates テンプレート集合を連番IDで登録する
func registerTemplates(prefix string, texts []string) {
	for i, text := range texts {
		templateTexts[templateID(prefix, i)] = text
	}
}

// templateID テンプレート集合内の位置からIDを組み立てる
func templateID(prefix string, index int) string {
	return fmt.Sprintf("%s_%02d", prefix, index+1)
}

// pickTemplate テンプレート集合から一様ランダムに1つ選び、そのIDを返す
func pickTemplate(rng Rand, prefix string, texts []string) string {
	return templateID(prefix, rng.Intn(len(texts)))
}

// TemplateText テンプレートIDに対応する描画用テキストを返す
func TemplateText(id string) (string, bool) {
	text, ok := templateTexts[id]
	return text, ok
}
