package vision

// Citation is a reference label with its quoted text.
type Citation struct {
	Reference string `json:"reference"`
	Text      string `json:"text"`
}

type themeDef struct {
	tag Theme
	// keywords are matched as substrings of the lowercased segment.
	keywords []string
	// triggers are entity names that force the theme.
	triggers     []string
	verses       []Citation
	applications []string
	prayers      []string
}

var taxonomy = []themeDef{
	{
		tag:      Protection,
		keywords: []string{"protect", "shield", "refuge", "shelter", "rescue", "deliver", "safe"},
		verses: []Citation{
			{"Psalm 91:1-2", "He who dwells in the shelter of the Most High will abide in the shadow of the Almighty. I will say to the LORD, My refuge and my fortress, my God, in whom I trust."},
			{"Psalm 121:7-8", "The LORD will keep you from all evil; he will keep your life. The LORD will keep your going out and your coming in from this time forth and forevermore."},
			{"2 Thessalonians 3:3", "But the Lord is faithful. He will establish you and guard you against the evil one."},
			{"Isaiah 54:17", "No weapon that is fashioned against you shall succeed."},
		},
		applications: []string{
			"Thank God for the ways He has already shielded you in this season.",
			"Identify the fears this vision stirs and bring each one to God in prayer.",
		},
		prayers: []string{
			"Lord, be my refuge and fortress; cover me and those I love under Your wings.",
			"Father, replace every fear in me with trust in Your faithful protection.",
		},
	},
	{
		tag:      Guidance,
		keywords: []string{"direction", "path", "way", "lead", "guide", "wisdom", "counsel"},
		triggers: []string{"dove"},
		verses: []Citation{
			{"Psalm 32:8", "I will instruct you and teach you in the way you should go; I will counsel you with my eye upon you."},
			{"Proverbs 3:5-6", "Trust in the LORD with all your heart, and do not lean on your own understanding. In all your ways acknowledge him, and he will make straight your paths."},
			{"James 1:5", "If any of you lacks wisdom, let him ask God, who gives generously to all without reproach, and it will be given him."},
			{"Psalm 25:4-5", "Make me to know your ways, O LORD; teach me your paths. Lead me in your truth and teach me."},
		},
		applications: []string{
			"Write down the decisions in front of you and ask God for direction on each.",
			"Seek counsel from a mature believer before acting on this vision.",
		},
		prayers: []string{
			"Lord, make Your path plain before me and lead me in Your truth.",
		},
	},
	{
		tag:      SpiritualGuidance,
		keywords: []string{"spirit", "holy", "angel", "worship", "pray"},
		verses: []Citation{
			{"John 16:13", "When the Spirit of truth comes, he will guide you into all the truth."},
			{"Romans 8:14", "For all who are led by the Spirit of God are sons of God."},
			{"Galatians 5:25", "If we live by the Spirit, let us also keep in step with the Spirit."},
		},
		applications: []string{
			"Set aside unhurried time to listen for the Holy Spirit's prompting.",
			"Keep in step with the Spirit by obeying the last thing He asked of you.",
		},
		prayers: []string{
			"Holy Spirit, guide me into all truth and help me keep in step with You.",
		},
	},
	{
		tag:      Warfare,
		keywords: []string{"battle", "fight", "enemy", "warfare", "attack", "weapon", "hurt"},
		triggers: []string{"lion", "serpent", "snake"},
		verses: []Citation{
			{"Ephesians 6:12", "For we do not wrestle against flesh and blood, but against principalities, against powers."},
			{"2 Corinthians 10:4", "For the weapons of our warfare are not of the flesh but have divine power."},
			{"James 4:7", "Submit yourselves therefore to God. Resist the devil, and he will flee from you."},
			{"1 Peter 5:8-9", "Be sober-minded; be watchful. Your adversary the devil prowls around like a roaring lion."},
		},
		applications: []string{
			"Put on the full armor of God daily, naming each piece as you pray.",
			"Stand firm in what God has said rather than in how things appear.",
		},
		prayers: []string{
			"Lord, I submit to You and resist every work of the enemy against my life.",
		},
	},
	{
		tag:      Transformation,
		keywords: []string{"change", "transform", "new", "different", "become"},
		verses: []Citation{
			{"2 Corinthians 3:18", "We are being transformed into the same image from glory to glory."},
			{"Romans 12:2", "Be transformed by the renewal of your mind."},
			{"Philippians 3:21", "Who will transform our lowly body to be like his glorious body."},
			{"2 Corinthians 5:17", "If anyone is in Christ, he is a new creation."},
		},
		applications: []string{
			"Notice which old patterns God may be asking you to leave behind.",
			"Renew your mind daily with a passage of Scripture.",
		},
		prayers: []string{
			"Father, transform me from glory to glory into the image of Your Son.",
		},
	},
	{
		tag:      Revelation,
		keywords: []string{"reveal", "uncover", "unveil", "mystery", "secret", "hidden"},
		triggers: []string{"screen"},
		verses: []Citation{
			{"Daniel 2:22", "He reveals deep and hidden things; he knows what is in the darkness, and the light dwells with him."},
			{"Jeremiah 33:3", "Call to me and I will answer you, and will tell you great and hidden things that you have not known."},
			{"Ephesians 1:17", "That the God of our Lord Jesus Christ, the Father of glory, may give you the Spirit of wisdom and of revelation in the knowledge of him."},
		},
		applications: []string{
			"Record what you believe God is revealing and revisit it in a week.",
			"Test what was shown to you against Scripture before sharing it.",
		},
		prayers: []string{
			"Father, give me the Spirit of wisdom and revelation to know You better.",
		},
	},
	{
		tag:      Empowerment,
		keywords: []string{"power", "anoint", "authority", "energy", "strong"},
		triggers: []string{"power"},
		verses: []Citation{
			{"Acts 1:8", "But you will receive power when the Holy Spirit has come upon you."},
			{"Isaiah 40:29", "He gives power to the faint, and to him who has no might he increases strength."},
			{"Ephesians 3:20", "Now to him who is able to do far more abundantly than all that we ask or think, according to the power at work within us."},
		},
		applications: []string{
			"Ask where God may be equipping you to serve others with fresh strength.",
			"Step into one act of service this week that depends on His power, not yours.",
		},
		prayers: []string{
			"Holy Spirit, fill me afresh with Your power for the work You have given me.",
		},
	},
	{
		tag:      Provision,
		keywords: []string{"provide", "provision", "harvest", "supply", "abundance", "feed", "bread"},
		triggers: []string{"cow"},
		verses: []Citation{
			{"Philippians 4:19", "And my God will supply every need of yours according to his riches in glory in Christ Jesus."},
			{"Psalm 50:10", "For every beast of the forest is mine, the cattle on a thousand hills."},
			{"Matthew 6:33", "But seek first the kingdom of God and his righteousness, and all these things will be added to you."},
			{"Deuteronomy 28:2", "And all these blessings shall come upon you and overtake you, if you obey the voice of the LORD your God."},
		},
		applications: []string{
			"List the ways God has provided for you and thank Him for each one.",
			"Consider where you are chasing provision instead of letting it follow obedience.",
		},
		prayers: []string{
			"Father, I trust You to supply every need according to Your riches in glory.",
		},
	},
	{
		tag:      Warning,
		keywords: []string{"caution", "danger", "alert", "watch", "careful", "guard"},
		triggers: []string{"cow", "serpent", "snake"},
		verses: []Citation{
			{"1 Thessalonians 5:21", "But test everything; hold fast what is good."},
			{"1 John 4:1", "Beloved, do not believe every spirit, but test the spirits to see whether they are from God."},
			{"Proverbs 14:15", "The simple believes everything, but the prudent gives thought to his steps."},
			{"Ezekiel 33:7", "I have made you a watchman for the house of Israel."},
		},
		applications: []string{
			"Examine your current commitments for anything that needs caution.",
			"Guard your heart by slowing down before major decisions.",
		},
		prayers: []string{
			"Lord, open my eyes to any danger and give me wisdom to respond.",
		},
	},
	{
		tag:      Encouragement,
		keywords: []string{"strength", "courage", "comfort", "hope", "uplift"},
		verses: []Citation{
			{"Isaiah 41:10", "Fear not, for I am with you; be not dismayed, for I am your God; I will strengthen you, I will help you."},
			{"Philippians 4:13", "I can do all things through him who strengthens me."},
			{"2 Timothy 1:7", "For God gave us a spirit not of fear but of power and love and self-control."},
			{"Joshua 1:9", "Be strong and courageous. Do not be frightened, and do not be dismayed, for the LORD your God is with you wherever you go."},
		},
		applications: []string{
			"Share a word of encouragement with someone who is struggling.",
			"Memorize a verse of hope to hold onto this week.",
		},
		prayers: []string{
			"Lord, strengthen my heart and fill me with courage and hope.",
		},
	},
	{
		tag:      Restoration,
		keywords: []string{"restore", "heal", "renew", "rebuild", "recover"},
		verses: []Citation{
			{"Joel 2:25", "I will restore to you the years that the swarming locust has eaten."},
			{"Isaiah 61:3", "To give them beauty for ashes, the oil of joy for mourning."},
			{"Jeremiah 30:17", "For I will restore health to you, and your wounds I will heal, declares the LORD."},
			{"1 Peter 5:10", "After you have suffered a little while, the God of all grace will himself restore, confirm, strengthen, and establish you."},
		},
		applications: []string{
			"Bring a specific loss or wound to God and ask Him to restore it.",
			"Take one practical step toward reconciliation where it is needed.",
		},
		prayers: []string{
			"Father, restore what has been lost and heal what has been broken in me.",
		},
	},
	{
		tag:      SpiritualGrowth,
		keywords: []string{"grow", "mature", "develop", "learn", "progress"},
		verses: []Citation{
			{"2 Peter 3:18", "But grow in the grace and knowledge of our Lord and Savior Jesus Christ."},
			{"Colossians 2:6-7", "Therefore, as you received Christ Jesus the Lord, so walk in him, rooted and built up in him."},
			{"Ephesians 4:15", "Rather, speaking the truth in love, we are to grow up in every way into him who is the head, into Christ."},
			{"Philippians 1:6", "He who began a good work in you will bring it to completion at the day of Jesus Christ."},
		},
		applications: []string{
			"Choose one spiritual discipline to practice consistently this month.",
			"Ask a mentor where they see you growing and where you are stuck.",
		},
		prayers: []string{
			"Lord, root me deeply in You and let me grow in grace and knowledge.",
		},
	},
	{
		tag:      DivineTiming,
		keywords: []string{"time", "season", "moment", "wait", "patience"},
		verses: []Citation{
			{"Ecclesiastes 3:1", "For everything there is a season, and a time for every matter under heaven."},
			{"Habakkuk 2:3", "For still the vision awaits its appointed time; it hastens to the end, it will not lie."},
			{"Isaiah 55:8-9", "For my thoughts are not your thoughts, neither are your ways my ways, declares the LORD."},
			{"Psalm 31:15", "My times are in your hands."},
		},
		applications: []string{
			"Write the vision down and wait for God's timing before acting on it.",
			"Practice patience by surrendering your timeline to God in prayer.",
		},
		prayers: []string{
			"Father, my times are in Your hands; teach me to wait on You.",
		},
	},
	{
		tag:      PropheticInsight,
		keywords: []string{"vision", "dream", "prophecy", "prophet", "reveal", "show"},
		verses: []Citation{
			{"1 Corinthians 14:3", "The one who prophesies speaks to people for their upbuilding and encouragement and consolation."},
			{"Joel 2:28", "Your sons and your daughters shall prophesy, your old men shall dream dreams."},
			{"Amos 3:7", "For the Lord GOD does nothing without revealing his secret to his servants the prophets."},
			{"1 Thessalonians 5:20-21", "Do not despise prophecies, but test everything; hold fast what is good."},
		},
		applications: []string{
			"Submit this vision to trusted spiritual leadership for discernment.",
			"Keep a journal of dreams and visions to notice recurring patterns.",
		},
		prayers: []string{
			"Lord, confirm what is from You and let me hold fast only to what is good.",
		},
	},
}

var taxonomyIndex = func() map[Theme]*themeDef {
	idx := make(map[Theme]*themeDef, len(taxonomy))
	for i := range taxonomy {
		idx[taxonomy[i].tag] = &taxonomy[i]
	}
	return idx
}()

// generalReferences stand in when no theme was detected.
var generalReferences = []Citation{
	{"Proverbs 3:5-6", "Trust in the LORD with all your heart, and do not lean on your own understanding. In all your ways acknowledge him, and he will make straight your paths."},
	{"James 1:5", "If any of you lacks wisdom, let him ask God, who gives generously to all without reproach, and it will be given him."},
}

var generalApplications = []string{
	"Always test interpretations against Scripture.",
	"Seek confirmation through prayer and spiritual counsel.",
	"Consider the broader context of your spiritual journey.",
	"Remember that understanding may come gradually.",
	"Journal about this vision and revisit it as God brings clarity.",
	"Share this vision with a trusted spiritual mentor.",
}

var generalPrayers = []string{
	"Lord, grant me wisdom to understand the spiritual significance of this vision.",
	"Holy Spirit, help me discern the true meaning and source of this vision.",
	"Father, open the eyes of my heart to understand Your revelation.",
	"Spirit of Truth, guide me into all truth regarding this vision.",
}

var insightTemplates = []string{
	"This vision may be inviting you into a season of %s.",
	"Consider how God may be speaking to you about %s through what you saw.",
	"The imagery here points toward %s; take time to pray over it.",
	"Reflect on how %s is unfolding in your life right now.",
}

var symbolPrinciples = []string{
	"Consider how %s relates to your current spiritual journey.",
	"Reflect on the biblical context of %s in scripture.",
	"Examine how %s might guide your next steps.",
}

// symbolPrayers holds one template pool per prayer category: understanding,
// guidance, confirmation, preparation and application.
var symbolPrayers = [][]string{
	{
		"Lord, grant me wisdom to understand the spiritual significance of %s.",
		"Holy Spirit, illuminate the meaning of %s in my life.",
		"Father, help me discern Your message through %s.",
		"Jesus, open my spiritual eyes to understand what %s represents in this season.",
	},
	{
		"Guide me, Lord, in applying the truth about %s to my life.",
		"Show me, Father, how to walk in the light of this revelation about %s.",
		"Direct my steps as I consider the meaning of %s.",
		"Holy Spirit, help me steward this understanding about %s wisely.",
	},
	{
		"Lord, confirm through Your Word the meaning of %s.",
		"Father, establish Your truth regarding %s in my heart.",
		"Holy Spirit, bear witness to the interpretation of %s.",
		"Jesus, help me discern Your voice regarding %s.",
	},
	{
		"Lord, prepare my heart to receive Your truth about %s.",
		"Father, make me ready for what You're revealing through %s.",
		"Holy Spirit, align my spirit with Your purposes regarding %s.",
		"Jesus, help me be faithful with this revelation about %s.",
	},
	{
		"Show me, Lord, how to apply this truth about %s in my daily walk.",
		"Father, help me be a doer of Your Word regarding %s.",
		"Holy Spirit, guide me in practical application of what %s represents.",
		"Jesus, help me walk out this revelation about %s in Your strength.",
	},
}

var propheticInsights = []string{
	"Seek confirmation of this revelation through Scripture and spiritual leadership.",
	"Consider how this insight aligns with God's written Word.",
	"Look for patterns of confirmation in your spiritual journey.",
	"Document this revelation for future reference and testing.",
}

const (
	urgentContextPrayer   = "Lord, grant me clear understanding and direction in this urgent matter."
	confusedContextPrayer = "Open my eyes, Lord, that I may see wonderful things in your law."
)
